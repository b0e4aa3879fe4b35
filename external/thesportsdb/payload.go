package thesportsdb

import (
	"bytes"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/scoresync/internal/usecase"
)

type eventsPayload struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	ID        flexString  `json:"idEvent"`
	HomeTeam  string      `json:"strHomeTeam"`
	AwayTeam  string      `json:"strAwayTeam"`
	HomeScore *flexString `json:"intHomeScore"`
	AwayScore *flexString `json:"intAwayScore"`
	Round     flexString  `json:"intRound"`
	Date      string      `json:"dateEvent"`
	Status    string      `json:"strStatus"`
}

// flexString accepts both quoted and bare JSON scalars.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func (f flexString) String() string {
	return string(f)
}

func (p eventPayload) toExternal() usecase.ExternalSeasonEvent {
	return usecase.ExternalSeasonEvent{
		ID:        strings.TrimSpace(p.ID.String()),
		HomeTeam:  strings.TrimSpace(p.HomeTeam),
		AwayTeam:  strings.TrimSpace(p.AwayTeam),
		HomeScore: scoreText(p.HomeScore),
		AwayScore: scoreText(p.AwayScore),
		Round:     strings.TrimSpace(p.Round.String()),
		Date:      strings.TrimSpace(p.Date),
		Status:    strings.TrimSpace(p.Status),
	}
}

func scoreText(value *flexString) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(value.String())
	return &out
}

package tournament

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Tournament is a prediction contest over a standard or custom competition.
type Tournament struct {
	ID                  string
	Name                string
	CompetitionID       *int64
	CustomCompetitionID *string
	StartingMatchday    int
	EndingMatchday      int
	EndingDate          *time.Time
	AllMatchdays        bool
	Status              Status
	UpdatedAt           time.Time
}

func (t Tournament) IsCustom() bool {
	return t.CustomCompetitionID != nil && *t.CustomCompetitionID != ""
}

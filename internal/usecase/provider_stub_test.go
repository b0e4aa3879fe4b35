package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type stubPrimary struct {
	mu           sync.Mutex
	competitions map[int64]ExternalCompetition
	matches      map[int64][]ExternalMatch
	single       map[int64]ExternalMatch
	account      ExternalAccountStatus
	errs         map[string]error
	calls        []string
}

func (s *stubPrimary) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.errs[call]
}

func (s *stubPrimary) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubPrimary) FetchCompetition(_ context.Context, id int64) (ExternalCompetition, error) {
	if err := s.record(fmt.Sprintf("competition:%d", id)); err != nil {
		return ExternalCompetition{}, err
	}
	return s.competitions[id], nil
}

func (s *stubPrimary) FetchCompetitionMatches(_ context.Context, id int64) ([]ExternalMatch, error) {
	if err := s.record(fmt.Sprintf("matches:%d", id)); err != nil {
		return nil, err
	}
	return s.matches[id], nil
}

func (s *stubPrimary) FetchMatch(_ context.Context, id int64) (ExternalMatch, error) {
	if err := s.record(fmt.Sprintf("match:%d", id)); err != nil {
		return ExternalMatch{}, err
	}
	return s.single[id], nil
}

func (s *stubPrimary) FetchAccountStatus(context.Context) (ExternalAccountStatus, error) {
	if err := s.record("account"); err != nil {
		return ExternalAccountStatus{}, err
	}
	return s.account, nil
}

type stubSecondary struct {
	mu     sync.Mutex
	events map[string][]ExternalSeasonEvent
	calls  []string
}

func (s *stubSecondary) FetchSeasonEvents(_ context.Context, leagueID int64, season string) ([]ExternalSeasonEvent, error) {
	key := fmt.Sprintf("%d:%s", leagueID, season)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)
	events, ok := s.events[key]
	if !ok {
		return nil, fmt.Errorf("no events for %s", key)
	}
	return events, nil
}

func (s *stubSecondary) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type memLastRuns struct {
	mu   sync.Mutex
	runs map[string]time.Time
}

func newMemLastRuns() *memLastRuns {
	return &memLastRuns{runs: make(map[string]time.Time)}
}

func (m *memLastRuns) LastRun(_ context.Context, key string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.runs[key]
	if !ok {
		return nil, nil
	}
	return &at, nil
}

func (m *memLastRuns) MarkRun(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[key] = at
	return nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// steppingClock advances by step on every read, starting at start.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at := next
		next = next.Add(step)
		return at
	}
}

func strPtr(v string) *string { return &v }

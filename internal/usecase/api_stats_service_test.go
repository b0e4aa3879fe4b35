package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	apicallmock "github.com/riskibarqy/scoresync/internal/mocks/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type recordingMetrics struct {
	mu    sync.Mutex
	calls []string
	runs  []string
}

func (m *recordingMetrics) ObserveAPICall(provider, callType string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := "success"
	if !success {
		status = "error"
	}
	m.calls = append(m.calls, provider+"/"+callType+"/"+status)
}

func (m *recordingMetrics) ObserveSyncRun(job, status string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, job+"/"+status)
}

func TestAPICallAuditor_RecordsFailureAndSwallowsStorageErrors(t *testing.T) {
	t.Parallel()

	recordedAt := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	competitionID := int64(2021)
	repo := apicallmock.NewRepository(t)
	repo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e apicall.Entry) bool {
			return !e.Success &&
				e.ResponseTime == 1500*time.Millisecond &&
				*e.CompetitionID == competitionID &&
				e.CreatedAt.Equal(recordedAt)
		})).
		Return(errors.New("insert failed")).
		Once()

	metrics := &recordingMetrics{}
	auditor := NewAPICallAuditor(repo, metrics, logging.NewNop())
	auditor.now = fixedClock(recordedAt)

	auditor.Record(context.Background(), apicall.ProviderFootballData, apicall.CallTypeMatches, &competitionID, 1500*time.Millisecond, errors.New("429"))
	if len(metrics.calls) != 1 || metrics.calls[0] != "football-data/matches/error" {
		t.Fatalf("unexpected metrics: %v", metrics.calls)
	}

	var nilAuditor *APICallAuditor
	nilAuditor.Record(context.Background(), apicall.ProviderFootballData, apicall.CallTypeMatch, nil, time.Second, nil)
}

func TestAPIStatsService_Summary(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 13, 45, 0, 0, time.UTC)
	since := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	repo := apicallmock.NewRepository(t)
	repo.On("StatsSince", mock.Anything, since).Return([]apicall.Stat{
		{Provider: apicall.ProviderFootballData, CallType: apicall.CallTypeMatches, Total: 20, Failed: 2, AvgResponseMs: 310},
		{Provider: apicall.ProviderTheSportsDB, CallType: apicall.CallTypeSeasonEvents, Total: 3, AvgResponseMs: 820},
	}, nil).Once()
	repo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e apicall.Entry) bool { return e.CallType == apicall.CallTypeAccount && e.Success })).
		Return(nil).
		Once()

	available := 9
	primary := &stubPrimary{account: ExternalAccountStatus{PlanName: "TIER_ONE", RequestsAvailable: &available}}
	svc := NewAPIStatsService(repo, primary, NewAPICallAuditor(repo, nil, logging.NewNop()), logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Summary(context.Background(), true)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TotalCalls != 23 || got.FailedCalls != 2 {
		t.Fatalf("unexpected totals: total=%d failed=%d", got.TotalCalls, got.FailedCalls)
	}
	if got.PrimaryStatus == nil || *got.PrimaryStatus.RequestsAvailable != 9 {
		t.Fatalf("unexpected primary status: %+v", got.PrimaryStatus)
	}
}

func TestAPIStatsService_SummaryWithoutPrimary(t *testing.T) {
	t.Parallel()

	repo := apicallmock.NewRepository(t)
	repo.On("StatsSince", mock.Anything, mock.Anything).Return(nil, nil).Once()

	svc := NewAPIStatsService(repo, nil, nil, logging.NewNop())
	got, err := svc.Summary(context.Background(), true)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.StatusError == "" || got.Stats == nil {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

type APIStatsSummary struct {
	Since         time.Time              `json:"since"`
	TotalCalls    int                    `json:"total_calls"`
	FailedCalls   int                    `json:"failed_calls"`
	Stats         []apicall.Stat         `json:"stats"`
	PrimaryStatus *ExternalAccountStatus `json:"primary_status,omitempty"`
	StatusError   string                 `json:"status_error,omitempty"`
}

// APIStatsService reports today's provider usage.
type APIStatsService struct {
	repo    apicall.Repository
	primary PrimaryProvider
	audit   *APICallAuditor
	logger  *logging.Logger
	now     func() time.Time
}

func NewAPIStatsService(repo apicall.Repository, primary PrimaryProvider, audit *APICallAuditor, logger *logging.Logger) *APIStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &APIStatsService{
		repo:    repo,
		primary: primary,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// Summary aggregates calls since the start of the UTC day. With includeStatus it
// also asks the primary provider for its remaining quota.
func (s *APIStatsService) Summary(ctx context.Context, includeStatus bool) (APIStatsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.APIStatsService.Summary")
	defer span.End()

	since := competition.DateOnly(s.now())
	stats, err := s.repo.StatsSince(ctx, since)
	if err != nil {
		return APIStatsSummary{}, fmt.Errorf("load api call stats: %w", err)
	}

	out := APIStatsSummary{Since: since, Stats: stats}
	for _, stat := range stats {
		out.TotalCalls += stat.Total
		out.FailedCalls += stat.Failed
	}
	if out.Stats == nil {
		out.Stats = []apicall.Stat{}
	}

	if !includeStatus {
		return out, nil
	}
	if s.primary == nil {
		out.StatusError = ErrNotConfigured.Error()
		return out, nil
	}

	startedAt := s.now()
	status, err := s.primary.FetchAccountStatus(ctx)
	s.audit.Record(ctx, apicall.ProviderFootballData, apicall.CallTypeAccount, nil, s.now().Sub(startedAt), err)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch primary account status failed", "error", err)
		out.StatusError = err.Error()
		return out, nil
	}
	out.PrimaryStatus = &status
	return out, nil
}

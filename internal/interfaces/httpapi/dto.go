package httpapi

import (
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/usecase"
)

type primarySyncRequest struct {
	CompetitionIDs []int64 `json:"competition_ids" validate:"omitempty,max=50,dive,gt=0"`
}

type durationBatchRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

type recalculateDurationRequest struct {
	Reason                 string  `json:"reason" validate:"required,max=200"`
	PreviousEndingMatchday *int    `json:"previous_ending_matchday" validate:"omitempty,gt=0"`
	PreviousEndingDate     *string `json:"previous_ending_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// updateSettingsRequest patches the stored settings; absent fields keep their value.
type updateSettingsRequest struct {
	DailySyncEnabled   *bool   `json:"daily_sync_enabled"`
	DailySyncHour      *int    `json:"daily_sync_hour" validate:"omitempty,min=0,max=23"`
	RealtimeEnabled    *bool   `json:"realtime_enabled"`
	RealtimeInterval   *string `json:"realtime_interval" validate:"omitempty,min=2"`
	WindowMarginBefore *string `json:"window_margin_before" validate:"omitempty,min=2"`
	WindowMarginAfter  *string `json:"window_margin_after" validate:"omitempty,min=2"`
}

type settingsDTO struct {
	DailySyncEnabled   bool   `json:"daily_sync_enabled"`
	DailySyncHour      int    `json:"daily_sync_hour"`
	RealtimeEnabled    bool   `json:"realtime_enabled"`
	RealtimeInterval   string `json:"realtime_interval"`
	WindowMarginBefore string `json:"window_margin_before"`
	WindowMarginAfter  string `json:"window_margin_after"`
}

func toSettingsDTO(in usecase.SyncSettings) settingsDTO {
	return settingsDTO{
		DailySyncEnabled:   in.DailySyncEnabled,
		DailySyncHour:      in.DailySyncHour,
		RealtimeEnabled:    in.RealtimeEnabled,
		RealtimeInterval:   in.RealtimeInterval.String(),
		WindowMarginBefore: in.WindowMarginBefore.String(),
		WindowMarginAfter:  in.WindowMarginAfter.String(),
	}
}

type syncRunDTO struct {
	JobName        string    `json:"job_name"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	ItemsProcessed int       `json:"items_processed"`
	ItemsFailed    int       `json:"items_failed"`
	DurationMs     int64     `json:"duration_ms"`
	StartedAt      time.Time `json:"started_at"`
	TraceID        string    `json:"trace_id,omitempty"`
	SpanID         string    `json:"span_id,omitempty"`
}

func toSyncRunDTOs(runs []syncrun.Run) []syncRunDTO {
	out := make([]syncRunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, syncRunDTO{
			JobName:        run.JobName,
			Status:         string(run.Status),
			Message:        run.Message,
			ItemsProcessed: run.ItemsProcessed,
			ItemsFailed:    run.ItemsFailed,
			DurationMs:     run.Duration.Milliseconds(),
			StartedAt:      run.StartedAt.UTC(),
			TraceID:        run.TraceID,
			SpanID:         run.SpanID,
		})
	}
	return out
}

type durationEventDTO struct {
	ID                     int64      `json:"id"`
	TournamentID           string     `json:"tournament_id"`
	EventType              string     `json:"event_type"`
	PreviousEndingMatchday *int       `json:"previous_ending_matchday"`
	NewEndingMatchday      *int       `json:"new_ending_matchday"`
	PreviousEndingDate     *time.Time `json:"previous_ending_date"`
	NewEndingDate          *time.Time `json:"new_ending_date"`
	Reason                 string     `json:"reason"`
	EstimationUsed         bool       `json:"estimation_used"`
	EstimationDetails      string     `json:"estimation_details,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

func toDurationEventDTOs(events []durationevent.Event) []durationEventDTO {
	out := make([]durationEventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, durationEventDTO{
			ID:                     event.ID,
			TournamentID:           event.TournamentID,
			EventType:              event.EventType,
			PreviousEndingMatchday: event.PreviousEndingMatchday,
			NewEndingMatchday:      event.NewEndingMatchday,
			PreviousEndingDate:     event.PreviousEndingDate,
			NewEndingDate:          event.NewEndingDate,
			Reason:                 event.Reason,
			EstimationUsed:         event.EstimationUsed,
			EstimationDetails:      event.EstimationDetails,
			CreatedAt:              event.CreatedAt.UTC(),
		})
	}
	return out
}

type apiCallStatDTO struct {
	Provider      string  `json:"provider"`
	CallType      string  `json:"call_type"`
	Total         int     `json:"total"`
	Failed        int     `json:"failed"`
	AvgResponseMs float64 `json:"avg_response_ms"`
}

type accountStatusDTO struct {
	PlanName            string   `json:"plan_name,omitempty"`
	RequestsAvailable   *int     `json:"requests_available_minute"`
	RequestCounterReset *int     `json:"request_counter_reset_seconds"`
	CompetitionsAllowed []string `json:"competitions_allowed,omitempty"`
}

type apiStatsDTO struct {
	Since         time.Time         `json:"since"`
	TotalCalls    int               `json:"total_calls"`
	FailedCalls   int               `json:"failed_calls"`
	Stats         []apiCallStatDTO  `json:"stats"`
	PrimaryStatus *accountStatusDTO `json:"primary_status,omitempty"`
	StatusError   string            `json:"status_error,omitempty"`
}

func toAPIStatsDTO(in usecase.APIStatsSummary) apiStatsDTO {
	out := apiStatsDTO{
		Since:       in.Since.UTC(),
		TotalCalls:  in.TotalCalls,
		FailedCalls: in.FailedCalls,
		Stats:       make([]apiCallStatDTO, 0, len(in.Stats)),
		StatusError: in.StatusError,
	}
	for _, stat := range in.Stats {
		out.Stats = append(out.Stats, toAPICallStatDTO(stat))
	}
	if in.PrimaryStatus != nil {
		out.PrimaryStatus = &accountStatusDTO{
			PlanName:            in.PrimaryStatus.PlanName,
			RequestsAvailable:   in.PrimaryStatus.RequestsAvailable,
			RequestCounterReset: in.PrimaryStatus.RequestCounterReset,
			CompetitionsAllowed: in.PrimaryStatus.CompetitionsAllowed,
		}
	}
	return out
}

func toAPICallStatDTO(stat apicall.Stat) apiCallStatDTO {
	return apiCallStatDTO{
		Provider:      stat.Provider,
		CallType:      stat.CallType,
		Total:         stat.Total,
		Failed:        stat.Failed,
		AvgResponseMs: stat.AvgResponseMs,
	}
}

package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/usecase"
)

func (h *Handler) RecalculateTournamentDuration(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateTournamentDuration")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	var req recalculateDurationRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecalculateDurationInput{
		TournamentID:           tournamentID,
		Reason:                 req.Reason,
		PreviousEndingMatchday: req.PreviousEndingMatchday,
	}
	if req.PreviousEndingDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PreviousEndingDate)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: previous_ending_date must be RFC3339", usecase.ErrInvalidInput))
			return
		}
		parsed = parsed.UTC()
		input.PreviousEndingDate = &parsed
	}

	estimate, err := h.duration.Recalculate(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate tournament duration failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, estimate)
}

func (h *Handler) ListDurationEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDurationEvents")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := r.PathValue("tournamentID")
	events, err := h.duration.ListEvents(ctx, tournamentID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list duration events failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toDurationEventDTOs(events))
}

func (h *Handler) GetAPIStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAPIStats")
	defer span.End()

	includeStatus, err := queryBool(r, "include_status")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.stats.Summary(ctx, includeStatus)
	if err != nil {
		h.logger.ErrorContext(ctx, "load api stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toAPIStatsDTO(summary))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	current, err := h.settings.Load(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSettingsDTO(current))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSettings")
	defer span.End()

	var req updateSettingsRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	current, err := h.settings.Load(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	next, err := applySettingsPatch(current, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.settings.Save(ctx, next)
	if err != nil {
		h.logger.WarnContext(ctx, "save settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "sync settings updated",
		"daily_sync_enabled", saved.DailySyncEnabled,
		"daily_sync_hour", saved.DailySyncHour,
		"realtime_enabled", saved.RealtimeEnabled,
		"realtime_interval", saved.RealtimeInterval.String(),
	)
	writeSuccess(ctx, w, http.StatusOK, toSettingsDTO(saved))
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRuns")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	runs, err := h.runs.ListRecent(ctx, r.URL.Query().Get("job"), limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list sync runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSyncRunDTOs(runs))
}

func applySettingsPatch(current usecase.SyncSettings, req updateSettingsRequest) (usecase.SyncSettings, error) {
	next := current
	if req.DailySyncEnabled != nil {
		next.DailySyncEnabled = *req.DailySyncEnabled
	}
	if req.DailySyncHour != nil {
		next.DailySyncHour = *req.DailySyncHour
	}
	if req.RealtimeEnabled != nil {
		next.RealtimeEnabled = *req.RealtimeEnabled
	}

	durations := []struct {
		field string
		raw   *string
		dst   *time.Duration
	}{
		{"realtime_interval", req.RealtimeInterval, &next.RealtimeInterval},
		{"window_margin_before", req.WindowMarginBefore, &next.WindowMarginBefore},
		{"window_margin_after", req.WindowMarginAfter, &next.WindowMarginAfter},
	}
	for _, item := range durations {
		if item.raw == nil {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(*item.raw))
		if err != nil {
			return usecase.SyncSettings{}, fmt.Errorf("%w: %s must be a duration like 2m or 3h", usecase.ErrInvalidInput, item.field)
		}
		*item.dst = parsed
	}
	return next, nil
}

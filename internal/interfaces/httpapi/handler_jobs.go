package httpapi

import (
	"net/http"

	"github.com/riskibarqy/scoresync/internal/usecase"
)

// Job handlers answer 200 with the run summary even when items failed; only
// configuration and overlap errors change the status code.

func (h *Handler) RunPrimarySync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPrimarySync")
	defer span.End()

	var req primarySyncRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobs.RunPrimarySync(ctx, usecase.PrimarySyncInput{CompetitionIDs: req.CompetitionIDs})
	if err != nil {
		h.logger.WarnContext(ctx, "run primary sync job failed", "competition_ids", req.CompetitionIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRealtimeSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRealtimeSync")
	defer span.End()

	result, err := h.jobs.RunRealtimeSync(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run realtime sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunFallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFallback")
	defer span.End()

	result, err := h.jobs.RunFallback(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run fallback job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunMatchWindows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMatchWindows")
	defer span.End()

	result, err := h.jobs.RunMatchWindows(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run match window job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunDurationRecalculation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDurationRecalculation")
	defer span.End()

	var req durationBatchRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobs.RunDurationRecalculation(ctx, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "run duration recalculation job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

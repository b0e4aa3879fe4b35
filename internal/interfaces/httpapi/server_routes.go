package httpapi

import "net/http"

const jobRoutePrefix = "/v1/internal/jobs/"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/primary-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPrimarySync)))
	mux.Handle("POST /v1/internal/jobs/realtime-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRealtimeSync)))
	mux.Handle("POST /v1/internal/jobs/fallback", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFallback)))
	mux.Handle("POST /v1/internal/jobs/match-windows", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMatchWindows)))
	mux.Handle("POST /v1/internal/jobs/duration", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDurationRecalculation)))
}

func registerInternalOpsRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/tournaments/{tournamentID}/duration", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateTournamentDuration)))
	mux.Handle("GET /v1/internal/tournaments/{tournamentID}/duration-events", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListDurationEvents)))
	mux.Handle("GET /v1/internal/api-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetAPIStats)))
	mux.Handle("GET /v1/internal/settings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.GetSettings)))
	mux.Handle("PUT /v1/internal/settings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateSettings)))
	mux.Handle("GET /v1/internal/runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListRuns)))
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName      string
	InternalJobToken string
	// JobWriteTimeout replaces the server write timeout on job routes, which
	// answer only after the whole run.
	JobWriteTimeout time.Duration
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "scoresync"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)
	registerInternalOpsRoutes(mux, handler, cfg.InternalJobToken)

	traced := RequestTracing(cfg.ServiceName, RequestLogging(logger, recoverPanic(logger, mux)))
	return ExtendWriteDeadline(jobRoutePrefix, cfg.JobWriteTimeout, logger, traced)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

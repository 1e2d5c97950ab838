package httpapi

import (
	"net/http"

	"github.com/riskibarqy/grounder-api/internal/platform/id"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "grounder-api"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerCatalogRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerMediaRoutes(mux, handler)

	return RequestTracing(cfg.ServiceName, RequestLogging(logger, id.NewRandomGenerator(), CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
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

package rest

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// LoggerMiddleware кладет в контекст запроса логгер с trace_id и пишет итог запроса.
// X-Trace-ID клиента принимается, только если это UUID, и всегда возвращается в ответе.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(contextkeys.TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}
			w.Header().Set(contextkeys.TraceIDHeader, traceID)

			reqLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			ctx := contextkeys.ContextWithTraceID(r.Context(), traceID)
			ctx = contextkeys.ContextWithLogger(ctx, reqLogger)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			// шаблон маршрута известен только после роутинга
			route := r.URL.Path
			if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			fields := port.Fields{
				"http_method": r.Method,
				"http_route":  route,
				"status_code": ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(started).Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.Warn("Request failed", fields)
			case route == "/health":
				reqLogger.Debug("Request handled", fields)
			default:
				reqLogger.Info("Request handled", fields)
			}
		})
	}
}

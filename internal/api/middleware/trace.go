package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mythwell/field-api/internal/api/shared"
	"github.com/mythwell/field-api/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and attaches a
// request-scoped logger carrying it, so every log line produced while
// serving the request can be correlated with the response.
type TraceMiddleware struct {
	logger *slog.Logger
}

// NewTraceMiddleware creates a TraceMiddleware using the given base logger.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	m := &TraceMiddleware{logger: log}
	return m.Handle
}

// Handle wraps the next handler with trace ID assignment.
func (m *TraceMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		requestLogger := m.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, requestLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

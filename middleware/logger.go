package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"go-shop/logging"
)

// RequestLogger injects the application logger into the request context and
// logs one line per completed request.
func RequestLogger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			ctx := logging.IntoContext(r.Context(), l)
			next.ServeHTTP(rec, r.WithContext(ctx))

			l.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

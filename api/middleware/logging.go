package middleware

import (
	"net/http"
	"time"

	"task-list/logger"
)

// responseWriterInterceptor is a wrapper around http.ResponseWriter that allows us to capture the status code.
type responseWriterInterceptor struct {
	http.ResponseWriter
	statusCode int
}

// newResponseWriterInterceptor defaults the statusCode to 200, as WriteHeader is not always called.
func newResponseWriterInterceptor(w http.ResponseWriter) *responseWriterInterceptor {
	return &responseWriterInterceptor{w, http.StatusOK}
}

func (rwi *responseWriterInterceptor) WriteHeader(code int) {
	rwi.statusCode = code
	rwi.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status and duration of every request.
func LoggingMiddleware(lg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			rwi := newResponseWriterInterceptor(w)
			next.ServeHTTP(rwi, r)

			lg.HTTP(
				r.Method,
				r.URL.Path,
				rwi.statusCode,
				time.Since(startTime),
				map[string]any{
					"remote_addr": r.RemoteAddr,
					"user_agent":  r.UserAgent(),
					"request_id":  RequestIDFromContext(r.Context()),
				},
			)
		})
	}
}

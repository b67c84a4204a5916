package util

import (
	"net/http"
	"strings"
	"time"
)

// WithRequestLog emits a structured log for each outgoing HTTP request.
// It includes request_id so client logs can be matched with backend logs.
func WithRequestLog(service string, next http.RoundTripper) http.RoundTripper {
	service = strings.TrimSpace(service)
	if service == "" {
		service = "unknown"
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)
		logger := LoggerFromContext(r.Context())
		attrs := []any{
			"service", service,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", RequestIDFromRequest(r),
		}
		if err != nil {
			logger.Warn("http_request", append(attrs, "err", err)...)
			return nil, err
		}
		logger.Debug("http_request", append(attrs, "status", resp.StatusCode)...)
		return resp, nil
	})
}

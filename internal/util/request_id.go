package util

import (
	"context"
	"net/http"
	"strings"
)

type requestIDContextKey string

const (
	RequestIDHeader          = "X-Request-Id"
	requestIDCtxKey          = requestIDContextKey("request_id")
	defaultRequestIDFallback = ""
)

// ContextWithRequestID pins the id used for the next outgoing request.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

// RequestIDFromContext returns request id from context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return defaultRequestIDFallback
	}
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}

// RequestIDFromRequest returns the request id header, falling back to the
// request context.
func RequestIDFromRequest(r *http.Request) string {
	if r == nil {
		return defaultRequestIDFallback
	}
	if id := strings.TrimSpace(r.Header.Get(RequestIDHeader)); id != "" {
		return id
	}
	return RequestIDFromContext(r.Context())
}

// WithRequestID stamps every outgoing request with an X-Request-Id header.
// An id already in the header or the context is reused, otherwise one is
// generated. The request is cloned before it is modified.
func WithRequestID(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = RequestIDFromContext(r.Context())
		}
		if requestID == "" {
			requestID = NewID()
		}
		ctx := ContextWithRequestID(r.Context(), requestID)
		out := r.Clone(ctx)
		out.Header.Set(RequestIDHeader, requestID)
		return next.RoundTrip(out)
	})
}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

package apiclient

import (
	"net/http"
	"strings"

	"bookshelf/internal/util"
)

// TokenSource supplies the bearer token for each outgoing request.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// WithBearer sets exactly one "Authorization: Bearer <token>" header on every
// request, reading the token at request time. When the token is empty the
// header is removed so no blank bearer value is ever sent.
func WithBearer(tokens TokenSource, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return util.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		out := r.Clone(r.Context())
		out.Header.Del("Authorization")
		if tokens != nil {
			if token := strings.TrimSpace(tokens.Token()); token != "" {
				out.Header.Set("Authorization", "Bearer "+token)
			}
		}
		return next.RoundTrip(out)
	})
}

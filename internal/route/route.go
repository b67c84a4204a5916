// Package route decides what the view layer may render for a path given the
// current session state.
package route

import (
	"net/url"
	"strings"

	"bookshelf/internal/session"
)

// Client-side paths.
const (
	PathRoot    = "/"
	PathAuth    = "/auth"
	PathHome    = "/home"
	PathProfile = "/profile"
)

// Kind is the outcome of an authorization decision.
type Kind int

const (
	Allow Kind = iota
	// Wait means the session is still initializing; render a placeholder and
	// do not redirect.
	Wait
	// Redirect sends the user to Decision.Target.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is returned by Authorize.
type Decision struct {
	Kind   Kind
	Target string
}

// View identifies what the caller renders.
type View string

const (
	ViewAuth     View = "auth"
	ViewHome     View = "home"
	ViewProfile  View = "profile"
	ViewNotFound View = "not_found"
)

// Resolution is a Decision bound to the view the path maps to.
type Resolution struct {
	Path     string
	View     View
	Decision Decision
}

// Table is the static route configuration.
type Table struct {
	views     map[string]View
	aliases   map[string]string
	protected map[string]struct{}
}

// DefaultProtected lists the paths that need an authenticated session.
var DefaultProtected = []string{PathHome, PathProfile}

// NewTable builds the bookshelf route table. A nil protected list uses
// DefaultProtected.
func NewTable(protected []string) *Table {
	if protected == nil {
		protected = DefaultProtected
	}
	t := &Table{
		views: map[string]View{
			PathAuth:    ViewAuth,
			PathHome:    ViewHome,
			PathProfile: ViewProfile,
		},
		aliases:   map[string]string{PathRoot: PathAuth},
		protected: make(map[string]struct{}, len(protected)),
	}
	for _, p := range protected {
		t.protected[Normalize(p)] = struct{}{}
	}
	return t
}

// Protected reports whether path requires authentication.
func (t *Table) Protected(path string) bool {
	_, ok := t.protected[Normalize(path)]
	return ok
}

// Authorize is the pure route decision: Wait while loading, Redirect to /auth
// for a protected path on an anonymous session, Allow otherwise.
func (t *Table) Authorize(st session.State, path string) Decision {
	if st.Loading {
		return Decision{Kind: Wait}
	}
	if t.Protected(path) && !st.Authenticated {
		return Decision{Kind: Redirect, Target: PathAuth}
	}
	return Decision{Kind: Allow}
}

// Resolve maps path to a view and authorizes it. Aliases redirect
// unconditionally; unknown paths render ViewNotFound and never redirect.
func (t *Table) Resolve(st session.State, path string) Resolution {
	p := Normalize(path)
	if target, ok := t.aliases[p]; ok {
		return Resolution{Path: p, View: t.views[target], Decision: Decision{Kind: Redirect, Target: target}}
	}
	view, ok := t.views[p]
	if !ok {
		return Resolution{Path: p, View: ViewNotFound, Decision: Decision{Kind: Allow}}
	}
	return Resolution{Path: p, View: view, Decision: t.Authorize(st, p)}
}

// Normalize strips query, fragment and trailing slashes and ensures a leading
// slash.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = "/" + strings.Trim(path, "/")
	return path
}

var defaultTable = NewTable(nil)

// Authorize applies the default table.
func Authorize(st session.State, path string) Decision {
	return defaultTable.Authorize(st, path)
}

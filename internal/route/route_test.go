package route

import (
	"testing"

	"bookshelf/internal/session"
)

func TestAuthorizeWaitsWhileLoading(t *testing.T) {
	for _, authed := range []bool{false, true} {
		for _, p := range []string{"/", "/auth", "/home", "/profile", "/nope"} {
			st := session.State{Loading: true, Authenticated: authed}
			if d := Authorize(st, p); d.Kind != Wait {
				t.Fatalf("Authorize(%+v, %q) = %v, want wait", st, p, d.Kind)
			}
		}
	}
}

func TestAuthorizeProtectedPaths(t *testing.T) {
	anon := session.State{}
	authed := session.State{Authenticated: true, Token: "tok"}

	d := Authorize(anon, "/home")
	if d.Kind != Redirect || d.Target != "/auth" {
		t.Fatalf("anonymous /home = %+v, want redirect to /auth", d)
	}
	if d := Authorize(authed, "/home"); d.Kind != Allow {
		t.Fatalf("authenticated /home = %+v, want allow", d)
	}
	if d := Authorize(anon, "/profile/"); d.Kind != Redirect {
		t.Fatalf("anonymous /profile/ = %+v, want redirect", d)
	}
	if d := Authorize(anon, "/auth"); d.Kind != Allow {
		t.Fatalf("anonymous /auth = %+v, want allow", d)
	}
}

func TestResolveUnknownPathIsNotFound(t *testing.T) {
	table := NewTable(nil)
	res := table.Resolve(session.State{}, "/books/42")
	if res.View != ViewNotFound || res.Decision.Kind != Allow {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveRootRedirectsToAuth(t *testing.T) {
	table := NewTable(nil)
	res := table.Resolve(session.State{Authenticated: true, Token: "t"}, "/")
	if res.Decision.Kind != Redirect || res.Decision.Target != PathAuth {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveHomeWithQuery(t *testing.T) {
	table := NewTable(nil)
	res := table.Resolve(session.State{}, "/home?page=2")
	if res.View != ViewHome || res.Decision.Kind != Redirect {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestCustomProtectedSet(t *testing.T) {
	table := NewTable([]string{"/home"})
	if table.Protected("/profile") {
		t.Fatal("/profile should not be protected in custom table")
	}
	if !table.Protected("home/") {
		t.Fatal("/home should be protected")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"home":          "/home",
		"/home/":        "/home",
		" /profile?x=1": "/profile",
		"/auth#top":     "/auth",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

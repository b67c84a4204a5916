// Package app is the view layer of the bookshelf client: it runs the auth
// flows, guards views with the route table and owns the local book list.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"bookshelf/internal/apiclient"
	"bookshelf/internal/route"
	"bookshelf/internal/session"
	"bookshelf/pkg/domain"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// AuthAPI is the part of the API client used by the auth flows.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (apiclient.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (apiclient.Confirmation, error)
}

// ProfileStore returns the cached profile captured at login.
type ProfileStore interface {
	User(ctx context.Context) (*domain.User, error)
}

// Config holds the collaborators of App.
type Config struct {
	Session  *session.Manager
	Auth     AuthAPI
	Books    BookAPI
	Profiles ProfileStore
	Routes   *route.Table
	Logger   *slog.Logger
}

// App wires the session, the route table and the shelf.
type App struct {
	session  *session.Manager
	auth     AuthAPI
	profiles ProfileStore
	routes   *route.Table
	shelf    *Shelf
	logger   *slog.Logger
}

// New constructs the application.
func New(cfg Config) (*App, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if cfg.Auth == nil || cfg.Books == nil {
		return nil, fmt.Errorf("api client required")
	}
	if cfg.Routes == nil {
		cfg.Routes = route.NewTable(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &App{
		session:  cfg.Session,
		auth:     cfg.Auth,
		profiles: cfg.Profiles,
		routes:   cfg.Routes,
		shelf:    NewShelf(cfg.Books, cfg.Logger),
		logger:   cfg.Logger,
	}, nil
}

// Start completes the startup credential check. Route decisions made before
// Start return Wait.
func (a *App) Start(ctx context.Context) {
	a.session.Initialize(ctx)
}

// Session returns the current session snapshot.
func (a *App) Session() session.State {
	return a.session.State()
}

// Open resolves path against the route table for the current session.
func (a *App) Open(path string) route.Resolution {
	return a.routes.Resolve(a.session.State(), path)
}

// Require returns nil when path may be rendered now, ErrRoutePending while
// the session initializes and ErrNotAuthenticated when the route redirects.
func (a *App) Require(path string) error {
	res := a.Open(path)
	switch res.Decision.Kind {
	case route.Wait:
		return ErrRoutePending
	case route.Redirect:
		return fmt.Errorf("%w: redirect to %s", ErrNotAuthenticated, res.Decision.Target)
	default:
		return nil
	}
}

// Login authenticates with the service and stores the session. It returns
// the path to navigate to.
func (a *App) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.logger.Info("login failed", "err", err)
		return "", err
	}
	var user *domain.User
	if res.User != (domain.User{}) {
		u := res.User
		user = &u
	}
	a.session.Login(ctx, res.Token, user)
	return route.PathHome, nil
}

// Register creates an account. The caller switches to the login form on
// success.
func (a *App) Register(ctx context.Context, name, email, password string) (apiclient.Confirmation, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return apiclient.Confirmation{}, ErrInvalidEmail
	}
	conf, err := a.auth.Register(ctx, strings.TrimSpace(name), email, password)
	if err != nil {
		a.logger.Info("register failed", "err", err)
		return apiclient.Confirmation{}, err
	}
	return conf, nil
}

// Logout ends the session and returns the path to navigate to.
func (a *App) Logout(ctx context.Context) string {
	a.session.Logout(ctx)
	return route.PathAuth
}

// Home guards the home view and refreshes the shelf, as mounting the view
// does.
func (a *App) Home(ctx context.Context) (*Shelf, error) {
	if err := a.Require(route.PathHome); err != nil {
		return nil, err
	}
	if err := a.shelf.Refresh(ctx); err != nil {
		return nil, err
	}
	return a.shelf, nil
}

// Shelf returns the shelf without guarding or refreshing it.
func (a *App) Shelf() *Shelf {
	return a.shelf
}

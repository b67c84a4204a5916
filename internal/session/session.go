// Package session owns the client's authentication state and keeps it in
// sync with the credential store.
//
// A Manager starts in PhaseInitializing. Initialize moves it to either
// PhaseAnonymous or PhaseAuthenticated exactly once; afterwards only Login and
// Logout change it. Authenticated is always equivalent to a non-empty token.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"bookshelf/pkg/domain"
)

// Phase is the state-machine position of a Manager.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a session.
type State struct {
	Authenticated bool
	Loading       bool
	Token         string
}

// Phase derives the state-machine position from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseInitializing
	case s.Authenticated:
		return PhaseAuthenticated
	default:
		return PhaseAnonymous
	}
}

// CredentialStore is the persistence the Manager reads at startup and writes
// on login and logout.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, cred domain.Credential) error
	Clear(ctx context.Context) error
}

// Manager holds the in-memory session. It is safe for concurrent use.
type Manager struct {
	store  CredentialStore
	logger *slog.Logger

	init sync.Once
	mu   sync.RWMutex
	st   State
}

// New returns a Manager in the initializing phase.
func New(store CredentialStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		logger: logger,
		st:     State{Loading: true},
	}
}

// Initialize reads the persisted token once. Later calls are no-ops.
// A store read failure leaves the session anonymous.
func (m *Manager) Initialize(ctx context.Context) {
	m.init.Do(func() {
		token, err := m.store.Token(ctx)
		if err != nil {
			m.logger.Warn("session: read persisted token failed", "err", err)
			token = ""
		}
		token = strings.TrimSpace(token)

		m.mu.Lock()
		defer m.mu.Unlock()
		if token != "" {
			m.st.Authenticated = true
			m.st.Token = token
		}
		m.st.Loading = false
		m.logger.Debug("session initialized", "phase", m.st.Phase().String())
	})
}

// Login authenticates the session with an opaque backend-issued token and
// persists it together with user (which may be nil). The token is not
// inspected. An empty token is treated as Logout.
func (m *Manager) Login(ctx context.Context, token string, user *domain.User) {
	token = strings.TrimSpace(token)
	if token == "" {
		m.Logout(ctx)
		return
	}
	m.Initialize(ctx)

	m.mu.Lock()
	m.st.Authenticated = true
	m.st.Token = token
	m.mu.Unlock()

	if err := m.store.Save(ctx, domain.Credential{Token: token, User: user}); err != nil {
		m.logger.Warn("session: persist credential failed", "err", err)
	}
	m.logger.Info("session authenticated")
}

// Logout clears the session and removes the persisted credential. Calling it
// on an anonymous session leaves the state unchanged.
func (m *Manager) Logout(ctx context.Context) {
	m.Initialize(ctx)

	m.mu.Lock()
	m.st.Authenticated = false
	m.st.Token = ""
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("session: clear credential failed", "err", err)
	}
	m.logger.Info("session cleared")
}

// State returns a snapshot of the session.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st
}

// Token returns the current bearer token or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.Token
}

// Phase returns the current state-machine position.
func (m *Manager) Phase() Phase {
	return m.State().Phase()
}

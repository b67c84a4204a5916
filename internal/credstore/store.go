// Package credstore persists the bearer token and cached user profile
// between runs. All reads and writes of client credentials go through Store;
// the persistence mechanism is a pluggable KV backend.
package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookshelf/pkg/domain"
)

// Keys used in the backing key/value store.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// KV is a string key/value store that outlives the process.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Store reads and writes the credential entries on top of a KV backend.
type Store struct {
	kv KV
}

// New wraps kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Token returns the persisted token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(token), nil
}

// User returns the cached profile. A missing or unreadable blob yields nil.
func (s *Store) User(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Load reads the whole credential.
func (s *Store) Load(ctx context.Context) (domain.Credential, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return domain.Credential{}, err
	}
	user, err := s.User(ctx)
	if err != nil {
		return domain.Credential{}, err
	}
	return domain.Credential{Token: token, User: user}, nil
}

// Save persists the token and, when present, the user profile. A nil user
// leaves any previously cached profile untouched.
func (s *Store) Save(ctx context.Context, cred domain.Credential) error {
	if err := s.kv.Set(ctx, TokenKey, cred.Token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if cred.User == nil {
		return nil
	}
	data, err := json.Marshal(cred.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(data)); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// Clear removes both the token and the cached profile.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

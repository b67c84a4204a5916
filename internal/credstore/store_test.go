package credstore

import (
	"context"
	"testing"

	"bookshelf/pkg/domain"
)

func TestStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv)

	user := &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	if err := s.Save(ctx, domain.Credential{Token: "tok-1", User: user}); err != nil {
		t.Fatalf("save: %v", err)
	}
	cred, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cred.Token != "tok-1" {
		t.Fatalf("token = %q, want tok-1", cred.Token)
	}
	if cred.User == nil || *cred.User != *user {
		t.Fatalf("user = %+v, want %+v", cred.User, user)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if kv.Len() != 0 {
		t.Fatalf("expected both keys removed, %d left", kv.Len())
	}
	cred, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if cred.Token != "" || cred.User != nil {
		t.Fatalf("expected empty credential, got %+v", cred)
	}
}

func TestStoreSaveWithoutUserKeepsCachedProfile(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryKV())
	if err := s.Save(ctx, domain.Credential{Token: "a", User: &domain.User{Name: "Ada"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, domain.Credential{Token: "b"}); err != nil {
		t.Fatalf("save token only: %v", err)
	}
	user, err := s.User(ctx)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user == nil || user.Name != "Ada" {
		t.Fatalf("expected cached profile to survive, got %+v", user)
	}
}

func TestStoreIgnoresMalformedProfile(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, UserKey, "{not json")
	user, err := New(kv).User(ctx)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
}

func TestStoreTrimsBlankToken(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, TokenKey, "   ")
	token, err := New(kv).Token(ctx)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "" {
		t.Fatalf("token = %q, want empty", token)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(Config{Backend: "keychain"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

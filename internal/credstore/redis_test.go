package credstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisKVPrefixAndDelete(t *testing.T) {
	ctx := context.Background()
	redis := miniredis.RunT(t)
	kv := NewRedisKV(RedisConfig{Addr: redis.Addr(), Prefix: "test:"})
	t.Cleanup(func() { _ = kv.Close() })

	if err := kv.Set(ctx, TokenKey, "tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := redis.Get("test:token"); err != nil || got != "tok-1" {
		t.Fatalf("raw redis value = %q, %v", got, err)
	}
	got, ok, err := kv.Get(ctx, TokenKey)
	if err != nil || !ok || got != "tok-1" {
		t.Fatalf("get = %q, %v, %v", got, ok, err)
	}

	if err := kv.Delete(ctx, TokenKey, UserKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, err := kv.Get(ctx, TokenKey); err != nil || ok {
		t.Fatalf("expected missing after delete, ok=%v err=%v", ok, err)
	}
}

func TestRedisKVTTL(t *testing.T) {
	ctx := context.Background()
	redis := miniredis.RunT(t)
	kv := NewRedisKV(RedisConfig{Addr: redis.Addr(), TTL: time.Hour})
	t.Cleanup(func() { _ = kv.Close() })

	if err := kv.Set(ctx, TokenKey, "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := redis.TTL("bookshelf:token"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}
	redis.FastForward(2 * time.Hour)
	if _, ok, err := kv.Get(ctx, TokenKey); err != nil || ok {
		t.Fatalf("expected expired token, ok=%v err=%v", ok, err)
	}
}

func TestRedisKVGetFailsWhenServerDown(t *testing.T) {
	redis := miniredis.RunT(t)
	kv := NewRedisKV(RedisConfig{Addr: redis.Addr()})
	t.Cleanup(func() { _ = kv.Close() })
	redis.Close()

	if _, _, err := kv.Get(context.Background(), TokenKey); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

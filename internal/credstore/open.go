package credstore

import (
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend    string
	Path       string
	Passphrase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration
}

// Open builds the Store for cfg.Backend (file when empty).
func Open(cfg Config) (*Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		kv, err := NewFileKV(cfg.Path, cfg.Passphrase)
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case BackendRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, fmt.Errorf("redis credential backend requires an address")
		}
		return New(NewRedisKV(RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.RedisTTL,
		})), nil
	case BackendSQLite:
		kv, err := NewSQLiteKV(cfg.Path)
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case BackendMemory:
		return New(NewMemoryKV()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config location
// ($XDG_CONFIG_HOME/bookshelf/config.yaml). A missing file there is fine.
var ConfigPath = defaultPath("config.yaml")

// DotEnvPath is loaded before environment overrides are applied. Variables
// already set in the environment win.
var DotEnvPath = ".env"

// FileConfig represents configuration loaded from YAML and the environment.
type FileConfig struct {
	APIBaseURL           string   `yaml:"apiBaseURL" env:"BOOKSHELF_API_BASE_URL"`
	RequestTimeout       string   `yaml:"requestTimeout" env:"BOOKSHELF_REQUEST_TIMEOUT"`
	LogLevel             string   `yaml:"logLevel" env:"BOOKSHELF_LOG_LEVEL"`
	LogFormat            string   `yaml:"logFormat" env:"BOOKSHELF_LOG_FORMAT"`
	CredentialBackend    string   `yaml:"credentialBackend" env:"BOOKSHELF_CREDENTIAL_BACKEND"`
	CredentialPath       string   `yaml:"credentialPath" env:"BOOKSHELF_CREDENTIAL_PATH"`
	CredentialPassphrase string   `yaml:"credentialPassphrase" env:"BOOKSHELF_CREDENTIAL_PASSPHRASE"`
	RedisAddr            string   `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisPassword        string   `yaml:"redisPassword" env:"REDIS_PASSWORD"`
	RedisDB              int      `yaml:"redisDB" env:"REDIS_DB"`
	RedisPrefix          string   `yaml:"redisPrefix" env:"BOOKSHELF_REDIS_PREFIX"`
	RedisTTL             string   `yaml:"redisTTL" env:"BOOKSHELF_REDIS_TTL"`
	ProtectedRoutes      []string `yaml:"protectedRoutes" env:"BOOKSHELF_PROTECTED_ROUTES"`
	ViewportWidth        int      `yaml:"viewportWidth" env:"BOOKSHELF_VIEWPORT_WIDTH"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() FileConfig {
	return FileConfig{
		APIBaseURL:        "http://localhost:8080",
		RequestTimeout:    "10s",
		LogLevel:          "warn",
		LogFormat:         "text",
		CredentialBackend: "file",
		CredentialPath:    defaultPath("credentials.json"),
		RedisPrefix:       "bookshelf:",
		ViewportWidth:     1024,
	}
}

// Load reads config from path (defaults to ConfigPath), then .env, then the
// environment, and validates the result.
func Load(path string) (FileConfig, error) {
	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := godotenv.Load(DotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", DotEnvPath, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.CredentialBackend = strings.ToLower(strings.TrimSpace(cfg.CredentialBackend))

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if cfg.APIBaseURL == "" {
		return errors.New("config: apiBaseURL is required (set in config.yaml or BOOKSHELF_API_BASE_URL)")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: apiBaseURL must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}
	if _, err := ParseDuration("requestTimeout", cfg.RequestTimeout); err != nil {
		return err
	}
	if _, err := ParseDuration("redisTTL", cfg.RedisTTL); err != nil {
		return err
	}
	switch cfg.CredentialBackend {
	case "file", "sqlite":
		if strings.TrimSpace(cfg.CredentialPath) == "" {
			return fmt.Errorf("config: credentialPath is required for the %s backend", cfg.CredentialBackend)
		}
	case "redis":
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return errors.New("config: redisAddr is required for the redis backend")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown credentialBackend %q (file, sqlite, redis, memory)", cfg.CredentialBackend)
	}
	if cfg.ViewportWidth < 0 {
		return errors.New("config: viewportWidth must be >= 0")
	}
	return nil
}

// ParseDuration parses an optional duration string; empty means zero.
func ParseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s duration: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must be >= 0", field)
	}
	return d, nil
}

// Timeout returns the parsed request timeout.
func (c FileConfig) Timeout() time.Duration {
	d, _ := ParseDuration("requestTimeout", c.RequestTimeout)
	return d
}

// CredentialTTL returns the parsed Redis TTL.
func (c FileConfig) CredentialTTL() time.Duration {
	d, _ := ParseDuration("redisTTL", c.RedisTTL)
	return d
}

func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".bookshelf", name)
	}
	return filepath.Join(dir, "bookshelf", name)
}

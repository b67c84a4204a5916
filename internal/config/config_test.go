package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevConfig, prevEnv := ConfigPath, DotEnvPath
	ConfigPath = filepath.Join(dir, "missing.yaml")
	DotEnvPath = filepath.Join(dir, ".env")
	t.Cleanup(func() {
		ConfigPath, DotEnvPath = prevConfig, prevEnv
	})
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" || cfg.CredentialBackend != "file" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("timeout = %v, want 10s", cfg.Timeout())
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for explicit missing config")
	}
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, `
apiBaseURL: "https://books.example.com/"
requestTimeout: "5s"
logLevel: "debug"
credentialBackend: "sqlite"
credentialPath: "/tmp/creds.db"
protectedRoutes: ["/home"]
viewportWidth: 700
`)
	t.Setenv("BOOKSHELF_REQUEST_TIMEOUT", "3s")
	t.Setenv("BOOKSHELF_PROTECTED_ROUTES", "/home,/profile,/settings")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "https://books.example.com" {
		t.Fatalf("apiBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("timeout = %v, want 3s", cfg.Timeout())
	}
	if cfg.LogLevel != "debug" || cfg.CredentialBackend != "sqlite" || cfg.ViewportWidth != 700 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	want := []string{"/home", "/profile", "/settings"}
	if !reflect.DeepEqual(cfg.ProtectedRoutes, want) {
		t.Fatalf("protectedRoutes = %v, want %v", cfg.ProtectedRoutes, want)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	writeFile(t, DotEnvPath, "BOOKSHELF_LOG_LEVEL=warn\nBOOKSHELF_API_BASE_URL=http://dotenv:9000\n")
	t.Setenv("BOOKSHELF_API_BASE_URL", "http://env:9001")
	// godotenv sets variables in the process; make sure they do not leak.
	t.Setenv("BOOKSHELF_LOG_LEVEL", "")
	os.Unsetenv("BOOKSHELF_LOG_LEVEL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("logLevel = %q, want warn from .env", cfg.LogLevel)
	}
	if cfg.APIBaseURL != "http://env:9001" {
		t.Fatalf("apiBaseURL = %q, want env value", cfg.APIBaseURL)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*FileConfig)
		want string
	}{
		{"relative url", func(c *FileConfig) { c.APIBaseURL = "books.example.com" }, "absolute"},
		{"bad timeout", func(c *FileConfig) { c.RequestTimeout = "soon" }, "requestTimeout"},
		{"negative ttl", func(c *FileConfig) { c.RedisTTL = "-1m" }, "redisTTL"},
		{"redis without addr", func(c *FileConfig) { c.CredentialBackend = "redis" }, "redisAddr"},
		{"unknown backend", func(c *FileConfig) { c.CredentialBackend = "keychain" }, "unknown credentialBackend"},
		{"negative width", func(c *FileConfig) { c.ViewportWidth = -1 }, "viewportWidth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mut(&cfg)
			err := validateConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("validateConfig error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tandem.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Address != "ws://localhost:8000/rpc" {
		t.Errorf("default storage address = %q", cfg.Storage.Address)
	}
	if cfg.Clients.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("default model = %q", cfg.Clients.Gemini.Model)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
environment = "production"
owners = ["alex", "sam"]

[server]
port = 9090

[auth]
jwt_secret = "s3cret"
token_expiry = "1h"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if !cfg.HasOwner("alex") || !cfg.HasOwner("sam") || cfg.HasOwner("mallory") {
		t.Errorf("owners = %v", cfg.Owners)
	}
	if cfg.Auth.GetTokenExpiry().Hours() != 1 {
		t.Errorf("token expiry = %v", cfg.Auth.GetTokenExpiry())
	}
	// Unset file values keep their defaults.
	if cfg.Storage.Namespace != "tandem" {
		t.Errorf("namespace = %q, want default", cfg.Storage.Namespace)
	}
}

func TestConfig_RequiresOwners(t *testing.T) {
	path := writeConfigFile(t, `environment = "development"`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error when no owners configured")
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TANDEM_OWNERS", "alex,sam")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
owners = ["alex"]

[server]
port = 9090
`)
	t.Setenv("TANDEM_SERVER_PORT", "7070")
	t.Setenv("TANDEM_OWNERS", "alex, sam")
	t.Setenv("TANDEM_STORAGE_ADDRESS", "ws://db:8000/rpc")
	t.Setenv("TANDEM_AUTH_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if len(cfg.Owners) != 2 || cfg.Owners[1] != "sam" {
		t.Errorf("owners = %v", cfg.Owners)
	}
	if cfg.Storage.Address != "ws://db:8000/rpc" {
		t.Errorf("storage address = %q", cfg.Storage.Address)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
}

func TestConfig_GeminiKeyEnvFallbacks(t *testing.T) {
	t.Setenv("TANDEM_OWNERS", "alex")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TANDEM_GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Clients.Gemini.APIKey != "google-key" {
		t.Errorf("gemini key = %q, want GOOGLE_API_KEY fallback", cfg.Clients.Gemini.APIKey)
	}
}

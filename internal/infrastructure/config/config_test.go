package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfigFile writes YAML content to a temp file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
security:
  jwt:
    secret: "`+validSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 8000 {
		t.Errorf("API.Port = %d, want default 8000", cfg.API.Port)
	}
	if cfg.Database.Path != "./data/vrisa.db" {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}
	if cfg.Security.JWT.AccessTokenTTL != 60 {
		t.Errorf("AccessTokenTTL = %d, want default 60", cfg.Security.JWT.AccessTokenTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
api:
  port: 9001
database:
  path: /tmp/test-vrisa.db
security:
  jwt:
    secret: "`+validSecret+`"
    access_token_ttl: 120
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 9001 {
		t.Errorf("API.Port = %d, want 9001", cfg.API.Port)
	}
	if cfg.Database.Path != "/tmp/test-vrisa.db" {
		t.Errorf("Database.Path = %q, want /tmp/test-vrisa.db", cfg.Database.Path)
	}
	if cfg.Security.JWT.AccessTokenTTL != 120 {
		t.Errorf("AccessTokenTTL = %d, want 120", cfg.Security.JWT.AccessTokenTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
database:
  path: /from/file.db
security:
  jwt:
    secret: "file-secret-that-is-long-enough-123"
`)

	t.Setenv("VRISA_DATABASE_PATH", "/from/env.db")
	t.Setenv("VRISA_JWT_SECRET", validSecret)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/from/env.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Security.JWT.Secret != validSecret {
		t.Errorf("JWT.Secret should come from environment")
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	path := writeConfigFile(t, `
api:
  port: 8000
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail when jwt secret is missing")
	}
	if !strings.Contains(err.Error(), "security.jwt.secret is required") {
		t.Errorf("error should mention missing secret, got: %v", err)
	}
}

func TestLoad_ShortSecretFails(t *testing.T) {
	path := writeConfigFile(t, `
security:
  jwt:
    secret: "too-short"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for a short jwt secret")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWT.Secret = validSecret
	cfg.API.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject out-of-range port")
	}
}

func TestValidate_InvalidQoS(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWT.Secret = validSecret
	cfg.MQTT.QoS = 3

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject QoS > 2")
	}
}

func TestAccessTokenTTL_Duration(t *testing.T) {
	sec := SecurityConfig{JWT: JWTConfig{AccessTokenTTL: 60}}
	if got := sec.AccessTokenTTL().Minutes(); got != 60 {
		t.Errorf("AccessTokenTTL() = %v minutes, want 60", got)
	}
}

package config

import (
	"strings"
	"testing"
	"time"
)

func validAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:             strings.Repeat("x", MinJWTSecretBytes),
		AccessTokenTTLMinutes: 60,
		DefaultRole:           "ROLE_REPORTER",
	}
}

func TestAuthConfigValidate(t *testing.T) {
	if err := validAuthConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	short := validAuthConfig()
	short.JWTSecret = strings.Repeat("x", MinJWTSecretBytes-1)
	if err := short.Validate(); err == nil {
		t.Error("short secret accepted")
	}

	empty := validAuthConfig()
	empty.JWTSecret = ""
	if err := empty.Validate(); err == nil {
		t.Error("empty secret accepted")
	}

	zeroTTL := validAuthConfig()
	zeroTTL.AccessTokenTTLMinutes = 0
	if err := zeroTTL.Validate(); err == nil {
		t.Error("zero token TTL accepted")
	}

	noRole := validAuthConfig()
	noRole.DefaultRole = ""
	if err := noRole.Validate(); err == nil {
		t.Error("empty default role accepted")
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without a signing secret")
	}
}

func TestLoadWithSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", strings.Repeat("x", MinJWTSecretBytes))
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.AccessTokenTTL() != 30*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want 30m", cfg.Auth.AccessTokenTTL())
	}
	if cfg.Auth.DefaultRole != "ROLE_REPORTER" {
		t.Errorf("DefaultRole = %q", cfg.Auth.DefaultRole)
	}
	if len(cfg.Auth.PublicPathPrefixes) == 0 {
		t.Error("no default public path prefixes")
	}
}

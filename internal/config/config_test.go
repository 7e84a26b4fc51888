package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestLoad_Defaults tests values used when nothing is configured.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KINGRUN_ENV", "")
	t.Setenv("KINGRUN_SECRET", "")
	t.Setenv("KINGRUN_KV_BACKEND", "")
	t.Setenv("KINGRUN_AUTH_LATENCY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Auth.Latency != time.Second {
		t.Errorf("Latency = %v", cfg.Auth.Latency)
	}
	if len(cfg.Secret) != 32 {
		t.Errorf("generated secret is %d bytes", len(cfg.Secret))
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true by default")
	}
}

// TestLoad_Overrides tests environment parsing.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KINGRUN_KV_BACKEND", "Redis")
	t.Setenv("KINGRUN_REDIS_DB", "3")
	t.Setenv("KINGRUN_AUTH_LATENCY", "250")
	t.Setenv("KINGRUN_LOG_LEVEL", "debug")
	t.Setenv("KINGRUN_SECRET", strings.Repeat("ab", 32))
	t.Setenv("KINGRUN_TRUSTED_ORIGINS", "run.example.com, ,app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Redis.DB != 3 {
		t.Errorf("redis config = %+v / %+v", cfg.Storage, cfg.Redis)
	}
	if cfg.Auth.Latency != 250*time.Millisecond {
		t.Errorf("Latency = %v, want 250ms", cfg.Auth.Latency)
	}
	if cfg.Server.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.Server.LogLevel)
	}
	if !bytes.Equal(cfg.Secret, bytes.Repeat([]byte{0xab}, 32)) {
		t.Error("Secret not decoded from hex")
	}
	if got := strings.Join(cfg.Server.TrustedOrigins, "|"); got != "run.example.com|app.example.com" {
		t.Errorf("TrustedOrigins = %q", got)
	}
}

// TestLoad_Errors tests rejected configurations.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"KINGRUN_KV_BACKEND": "etcd"}},
		{"short secret", map[string]string{"KINGRUN_SECRET": "abcd"}},
		{"non-hex secret", map[string]string{"KINGRUN_SECRET": strings.Repeat("zz", 32)}},
		{"production without secret", map[string]string{"KINGRUN_ENV": "production", "KINGRUN_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KINGRUN_KV_BACKEND", "")
			t.Setenv("KINGRUN_SECRET", "")
			t.Setenv("KINGRUN_ENV", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}

	t.Setenv("KINGRUN_ENV", "production")
	t.Setenv("KINGRUN_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Load() error = %v, want ErrMissingSecret", err)
	}
}

// TestDeriveKey tests determinism and label separation.
func TestDeriveKey(t *testing.T) {
	secret := bytes.Repeat([]byte{1}, 32)

	a1, err := DeriveKey(secret, "csrf", 32)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	a2, _ := DeriveKey(secret, "csrf", 32)
	b, _ := DeriveKey(secret, "flash-hash", 32)

	if !bytes.Equal(a1, a2) {
		t.Error("DeriveKey() not deterministic")
	}
	if bytes.Equal(a1, b) {
		t.Error("different labels produced the same key")
	}
	if len(a1) != 32 {
		t.Errorf("len = %d, want 32", len(a1))
	}
}

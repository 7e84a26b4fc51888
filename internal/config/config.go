package config

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

// KV backends selectable with KINGRUN_KV_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// ErrMissingSecret is returned in production when KINGRUN_SECRET is unset.
var ErrMissingSecret = errors.New("KINGRUN_SECRET is required in production")

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Auth    AuthConfig

	// Secret is the master key every signing key is derived from.
	Secret []byte
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	Env         string
	RateLimit   int
	LogLevel    slog.Level
	SessionWait time.Duration
	SessionIdle time.Duration

	// TrustedOrigins are extra hosts allowed to submit forms, e.g. behind a proxy.
	TrustedOrigins []string
}

// StorageConfig selects and locates the session KV backend
type StorageConfig struct {
	Backend   string
	DBPath    string
	BadgerDir string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig configures the authentication backend
type AuthConfig struct {
	Latency time.Duration
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads .env (if present) and the environment.
// PRE: none
// POST: Returns a complete config; in production a missing or malformed secret is an error
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:        getEnv("KINGRUN_ADDR", ":8080"),
			Env:         getEnv("KINGRUN_ENV", "development"),
			RateLimit:   getEnvAsInt("KINGRUN_RATE_LIMIT", 10),
			LogLevel:    parseLevel(getEnv("KINGRUN_LOG_LEVEL", "info")),
			SessionWait: getEnvAsDuration("KINGRUN_SESSION_WAIT", 200*time.Millisecond),
			SessionIdle: getEnvAsDuration("KINGRUN_SESSION_IDLE", 30*time.Minute),

			TrustedOrigins: getEnvAsList("KINGRUN_TRUSTED_ORIGINS"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(getEnv("KINGRUN_KV_BACKEND", BackendSQLite)),
			DBPath:    getEnv("KINGRUN_DB_PATH", "kingrun.db"),
			BadgerDir: getEnv("KINGRUN_BADGER_DIR", "kingrun-badger"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("KINGRUN_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("KINGRUN_REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("KINGRUN_REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Latency: getEnvAsDuration("KINGRUN_AUTH_LATENCY", time.Second),
		},
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendBadger, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown KINGRUN_KV_BACKEND %q", cfg.Storage.Backend)
	}

	secret, err := loadSecret(cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	cfg.Secret = secret
	return cfg, nil
}

func loadSecret(production bool) ([]byte, error) {
	if keyHex := os.Getenv("KINGRUN_SECRET"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) < 32 {
			return nil, errors.New("KINGRUN_SECRET must be at least 64 hex characters (32 bytes)")
		}
		return key, nil
	}
	if production {
		return nil, ErrMissingSecret
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	slog.Warn("random_secret", "detail", "sessions and flash cookies won't survive restart; set KINGRUN_SECRET")
	return key, nil
}

// DeriveKey derives an n-byte key for label from the master secret using HKDF-SHA256.
// Different labels yield independent keys.
// PRE: secret is non-empty, n > 0
// POST: Returns a deterministic key for (secret, label, n)
func DeriveKey(secret []byte, label string, n int) ([]byte, error) {
	key := make([]byte, n)
	r := hkdf.New(sha256.New, secret, nil, []byte("kingrun:"+label))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", label, err)
	}
	return key, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("1s", "250ms") or plain milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"kingrun/internal/adapters/auth"
	web "kingrun/internal/adapters/http"
	"kingrun/internal/adapters/http/flash"
	"kingrun/internal/adapters/http/perf"
	"kingrun/internal/adapters/storage"
	"kingrun/internal/adapters/storage/catalog"
	"kingrun/internal/adapters/storage/kv"
	"kingrun/internal/application/session"
	"kingrun/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// sweepInterval is how often idle session managers and stale KV entries are dropped.
const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Performance instrumentation: wrap the session store with timing
	collector := perf.NewCollector(perf.DefaultRingSize)
	backing, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open %s session store: %v", cfg.Storage.Backend, err)
	}
	defer backing.Close()
	store := kv.NewTimedStore(backing, collector)

	static, err := catalog.NewStaticStore()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	registry := session.NewRegistry(store, auth.NewDemoBackend(static, cfg.Auth.Latency))

	flashHash, err := config.DeriveKey(cfg.Secret, "flash-hash", 32)
	if err != nil {
		log.Fatalf("failed to derive keys: %v", err)
	}
	flashBlock, err := config.DeriveKey(cfg.Secret, "flash-block", 32)
	if err != nil {
		log.Fatalf("failed to derive keys: %v", err)
	}
	csrfKey, err := config.DeriveKey(cfg.Secret, "csrf", 32)
	if err != nil {
		log.Fatalf("failed to derive keys: %v", err)
	}

	handler, err := web.NewMux(ctx, web.Deps{
		Catalog:   static,
		Sessions:  registry,
		Flash:     flash.NewCodec(flashHash, flashBlock, cfg.IsProduction()),
		Collector: collector,
	}, web.Options{
		CSRFKey:        csrfKey,
		Production:     cfg.IsProduction(),
		TrustedOrigins: cfg.Server.TrustedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		SessionWait:    cfg.Server.SessionWait,
	})
	if err != nil {
		log.Fatalf("failed to build handler: %v", err)
	}

	go sweep(ctx, registry, store, cfg.Server.SessionIdle)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server_shutdown_failed", "error", err)
		}
	}()

	slog.Info("server_starting",
		"version", version,
		"addr", cfg.Server.Addr,
		"env", cfg.Server.Env,
		"kv_backend", cfg.Storage.Backend,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("server_stopped")
}

// setupLogger installs the default slog handler: JSON in production, text otherwise.
func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.Server.LogLevel}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openStore opens the configured session KV backend.
// PRE: cfg.Storage.Backend is one of the config.Backend* values
// POST: Returns a ready store the caller must Close
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		return kv.OpenBadger(cfg.Storage.BadgerDir)
	case config.BackendRedis:
		return kv.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return openSQLite(cfg.Storage.DBPath)
	}
}

func openSQLite(dbPath string) (kv.Store, error) {
	// WAL mode and busy timeout keep concurrent session writes from failing with SQLITE_BUSY
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := storage.MigrateDB(db); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("database_ready", "path", dbPath, "schema", storage.LatestSchemaVersion())
	return kv.NewSQLiteStore(db), nil
}

// sweep periodically drops idle session managers and expired KV entries until ctx is done.
func sweep(ctx context.Context, registry *session.Registry, pruner kv.Pruner, idle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if n := registry.Sweep(idle); n > 0 {
			slog.Debug("sessions_swept", "count", n, "remaining", registry.Len())
		}
		n, err := pruner.Prune(ctx, time.Now().Add(-kv.EntryTTL))
		if err != nil {
			slog.Warn("kv_prune_failed", "error", err)
			continue
		}
		if n > 0 {
			slog.Info("kv_pruned", "count", n)
		}
	}
}

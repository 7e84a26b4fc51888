package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"kingrun/internal/adapters/http/flash"
	"kingrun/internal/adapters/http/middleware"
	"kingrun/internal/adapters/http/perf"
	"kingrun/internal/adapters/storage/catalog"
	"kingrun/internal/application/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps holds the collaborators the handlers use.
type Deps struct {
	Catalog   catalog.Store
	Sessions  *session.Registry
	Flash     *flash.Codec
	Collector *perf.Collector // optional
}

// Options tunes the middleware stack.
type Options struct {
	CSRFKey        []byte
	Production     bool
	TrustedOrigins []string
	RateLimit      int // requests per second per client IP
	SessionWait    time.Duration
	SlowRequest    time.Duration
}

// server carries handler dependencies.
type server struct {
	deps  Deps
	views *views
	now   func() time.Time
}

// NewMux wires HTTP handlers for the app. Background work started here stops when ctx is done.
// PRE: deps.Catalog, deps.Sessions and deps.Flash are non-nil; opts.CSRFKey is 32 bytes
// POST: Returns the fully wrapped handler
func NewMux(ctx context.Context, deps Deps, opts Options) (http.Handler, error) {
	v, err := parseViews(templateFS)
	if err != nil {
		return nil, err
	}
	s := &server{deps: deps, views: v, now: time.Now}
	middleware.SecureCookies = opts.Production

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.registerRoutes(mux, opts)

	rate := opts.RateLimit
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(ctx, rate, time.Second)

	// Apply middleware: Timing -> RateLimit -> Session -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, opts.Production, opts.TrustedOrigins),
		middleware.Session(deps.Sessions, opts.SessionWait),
		middleware.RateLimit(limiter),
		middleware.Timing(deps.Collector, opts.SlowRequest),
	), nil
}

func (s *server) registerRoutes(mux *http.ServeMux, opts Options) {
	loading := http.HandlerFunc(s.handleLoading)
	protected := middleware.RequireAuth(loading)
	guestOnly := middleware.RedirectIfAuthenticated(loading)

	mux.Handle("GET /auth", guestOnly(http.HandlerFunc(s.handleAuthForm)))
	mux.Handle("POST /auth", guestOnly(http.HandlerFunc(s.handleAuthSubmit)))
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.Handle("GET /{$}", protected(http.HandlerFunc(s.handleHome)))
	mux.Handle("GET /eventos", protected(http.HandlerFunc(s.handleEvents)))
	mux.Handle("GET /eventos/{id}", protected(http.HandlerFunc(s.handleEventDetail)))
	mux.Handle("POST /eventos/{id}/inscricao", protected(http.HandlerFunc(s.handleEventRegistration)))
	mux.Handle("GET /ranking", protected(http.HandlerFunc(s.handleRanking)))
	mux.Handle("GET /desafios", protected(http.HandlerFunc(s.handleChallenges)))
	mux.Handle("GET /perfil", protected(http.HandlerFunc(s.handleProfile)))

	if !opts.Production && s.deps.Collector != nil {
		mux.HandleFunc("GET /debug/perf", s.handlePerf)
	}

	mux.HandleFunc("/", s.handleNotFound)
}

// handlePerf serves the timing snapshot for the last 15 minutes.
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	snap := s.deps.Collector.Snapshot(s.now().Add(-15*time.Minute), 10)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		internalError(w, err)
	}
}

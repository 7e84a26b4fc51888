package browser_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "kingrun/internal/adapters/http"
	"kingrun/internal/adapters/auth"
	"kingrun/internal/adapters/http/flash"
	"kingrun/internal/adapters/storage"
	"kingrun/internal/adapters/storage/catalog"
	"kingrun/internal/adapters/storage/kv"
	"kingrun/internal/application/session"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the app against a temp SQLite session store and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("KINGRUN_BROWSER_TESTS") == "" {
		t.Skip("set KINGRUN_BROWSER_TESTS=1 to run browser tests")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	static, err := catalog.NewStaticStore()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	registry := session.NewRegistry(kv.NewSQLiteStore(db), auth.NewDemoBackend(static, 50*time.Millisecond))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	handler, err := web.NewMux(ctx, web.Deps{
		Catalog:  static,
		Sessions: registry,
		Flash:    flash.NewCodec([]byte(strings.Repeat("h", 32)), []byte(strings.Repeat("b", 32)), false),
	}, web.Options{
		CSRFKey:        []byte(strings.Repeat("c", 32)),
		TrustedOrigins: []string{fmt.Sprintf("127.0.0.1:%d", port)},
		RateLimit:      1000,
		SessionWait:    time.Second,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to build mux: %v", err)
	}

	srv := &http.Server{Addr: fmt.Sprintf("127.0.0.1:%d", port), Handler: handler}
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("test server error: %v", err)
		}
	}()

	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/auth")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		cancel()
		db.Close()
	})

	return &testApp{BaseURL: baseURL, DB: db, Server: srv, PW: pw, Browser: browser}
}

// newPage opens a tab sized like a phone.
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	bctx, err := a.Browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 390, Height: 844},
	})
	if err != nil {
		t.Fatalf("failed to create browser context: %v", err)
	}
	t.Cleanup(func() { bctx.Close() })
	page, err := bctx.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	return page
}

// login signs in through the form and waits for the home screen.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/auth"); err != nil {
		t.Fatalf("failed to open /auth: %v", err)
	}
	if err := page.Locator(`input[name="Email"]`).Fill("joao@email.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator(`input[name="Password"]`).Fill("123456"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator(`button[type="submit"]`).Click(); err != nil {
		t.Fatalf("failed to submit login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL + "/"); err != nil {
		t.Fatalf("login did not land on home: %v", err)
	}
}

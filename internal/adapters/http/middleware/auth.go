package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"kingrun/internal/application/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const managerContextKey contextKey = "session_manager"

// DeviceCookieName names the cookie holding the device scope.
const DeviceCookieName = "kingrun_device"

// deviceCookieMaxAge is the longest lifetime browsers accept for a cookie.
const deviceCookieMaxAge = 400 * 24 * time.Hour

// SecureCookies controls the Secure flag on cookies. Set to true in production.
var SecureCookies = false

// ContextWithManager returns a context carrying the device's session manager.
func ContextWithManager(ctx context.Context, m *session.Manager) context.Context {
	return context.WithValue(ctx, managerContextKey, m)
}

// ManagerFromContext retrieves the session manager placed by Session.
func ManagerFromContext(ctx context.Context) (*session.Manager, bool) {
	m, ok := ctx.Value(managerContextKey).(*session.Manager)
	return m, ok && m != nil
}

// Session returns middleware that binds every request to the session manager of its
// device. It issues a device cookie on first visit and waits up to wait for a fresh
// manager to finish restoring, so most requests see a settled state.
func Session(registry *session.Registry, wait time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := deviceScope(r)
			if !ok {
				token, err := generateToken()
				if err != nil {
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				scope = token
				setDeviceCookie(w, scope)
			}

			m := registry.Acquire(r.Context(), scope)
			if m.Restoring() && wait > 0 {
				t := time.NewTimer(wait)
				select {
				case <-m.Ready():
				case <-t.C:
				case <-r.Context().Done():
				}
				t.Stop()
			}

			next.ServeHTTP(w, r.WithContext(ContextWithManager(r.Context(), m)))
		})
	}
}

// RequireAuth guards protected views. While the device's session is still
// restoring it serves loading with a Refresh header and makes no redirect decision.
// Anonymous devices are sent to /auth.
func RequireAuth(loading http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, ok := ManagerFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/auth", http.StatusSeeOther)
				return
			}
			if m.Restoring() {
				w.Header().Set("Refresh", "1")
				loading.ServeHTTP(w, r)
				return
			}
			if _, authed := m.User(); !authed {
				http.Redirect(w, r, "/auth", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends signed-in devices away from the sign-in screen.
func RedirectIfAuthenticated(loading http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, ok := ManagerFromContext(r.Context())
			if ok && m.Restoring() {
				w.Header().Set("Refresh", "1")
				loading.ServeHTTP(w, r)
				return
			}
			if ok {
				if _, authed := m.User(); authed {
					http.Redirect(w, r, "/", http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// deviceScope reads a well-formed device token from the request.
func deviceScope(r *http.Request) (string, bool) {
	c, err := r.Cookie(DeviceCookieName)
	if err != nil || len(c.Value) != 64 {
		return "", false
	}
	if _, err := hex.DecodeString(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// setDeviceCookie sets the device cookie.
// PRE: token is non-empty
// POST: Cookie is set on the response
func setDeviceCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     DeviceCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(deviceCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

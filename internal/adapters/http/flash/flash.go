package flash

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName names the cookie carrying a pending toast.
const CookieName = "kingrun_toast"

const maxAge = time.Minute

// Toast variants.
const (
	VariantDefault     = "default"
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

// Toast is a transient notification shown once on the next rendered view.
type Toast struct {
	Title       string `json:"t"`
	Description string `json:"d,omitempty"`
	Variant     string `json:"v,omitempty"`
}

// Codec signs and encrypts toasts into a short-lived cookie so they survive
// a redirect without server-side state.
type Codec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCodec creates a codec.
// PRE: hashKey is 32 or 64 bytes; blockKey is 16, 24 or 32 bytes
func NewCodec(hashKey, blockKey []byte, secure bool) *Codec {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))
	return &Codec{sc: sc, secure: secure}
}

// Set queues t for the next view.
// PRE: none
// POST: A signed cookie carrying t is set on the response
func (c *Codec) Set(w http.ResponseWriter, t Toast) error {
	if t.Variant == "" {
		t.Variant = VariantDefault
	}
	encoded, err := c.sc.Encode(CookieName, t)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending toast, if any, and clears it.
// Tampered or expired cookies are discarded silently.
// PRE: none
// POST: The toast cookie is cleared whenever one was present
func (c *Codec) Pop(w http.ResponseWriter, r *http.Request) (Toast, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Toast{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	var t Toast
	if err := c.sc.Decode(CookieName, cookie.Value, &t); err != nil {
		slog.Debug("flash_discarded", "error", err)
		return Toast{}, false
	}
	return t, true
}

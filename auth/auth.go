// Package auth implements HMAC-signed cookie sessions carrying a user id.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/i18n"
)

type ctxKey string

const (
	CookieName   = "session"
	userIDCtxKey = ctxKey("userID")
	defaultTTL   = 14 * 24 * time.Hour
)

// UserVerifier validates that a session's user still exists.
type UserVerifier func(ctx context.Context, uid uint) bool

// Manager signs and verifies session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	// Verify, when set, is consulted by RequireAuth on every request.
	Verify UserVerifier
}

// NewManager creates a manager signing with secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret), ttl: defaultTTL, now: time.Now}
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Create sets a signed cookie with the user id.
func (m *Manager) Create(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    uidStr + "." + m.sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  m.now().Add(m.ttl),
	})
}

// Clear deletes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates the cookie and returns the user id.
func (m *Manager) Parse(r *http.Request) (uint, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	uidStr, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return 0, false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// WithUserID stores user id in context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDCtxKey).(uint)
	return id, ok
}

// Middleware attaches the user id to the request context if a valid cookie is present.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := m.Parse(r); ok {
			r = r.WithContext(WithUserID(r.Context(), uid))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth answers 401 JSON when no live session is attached.
// A session whose user no longer exists is cleared.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := UserIDFromContext(r.Context())
		if ok && m.Verify != nil && !m.Verify(r.Context(), uid) {
			m.Clear(w)
			ok = false
		}
		if !ok {
			lang := i18n.LangFromContext(r.Context())
			httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", i18n.T(lang, "unauthenticated"), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package handlers

import (
	"net/http"

	"github.com/diewo77/costopro/auth"
	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/internal/services"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions *auth.Manager
	log      zerolog.Logger
}

func NewAuthHandler(a *services.AuthService, sessions *auth.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: a, sessions: sessions, log: log}
}

type loginRequest struct {
	Email      string `json:"email"`
	Credential string `json:"credential"`
}

// Login checks the credentials and starts a cookie session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.auth.Login(r.Context(), req.Email, req.Credential)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.sessions.Create(w, s.UserID())
	httpx.JSON(w, http.StatusOK, s.User.Redacted())
}

// Logout ends the session. It succeeds without a session too.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(services.SessionFromContext(r.Context()))
	h.sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the session user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s := services.SessionFromContext(r.Context())
	if !s.Active() {
		fail(w, r, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, s.User.Redacted())
}

// LoadSession turns the cookie user id attached by auth.Manager.Middleware
// into a services.Session. Stale ids (deleted users) stay anonymous.
func LoadSession(a *services.AuthService, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if uid, ok := auth.UserIDFromContext(r.Context()); ok {
				s, err := a.Resume(r.Context(), uid)
				if err != nil {
					log.Error().Err(err).Uint("user_id", uid).Msg("session lookup failed")
				} else if s != nil {
					r = r.WithContext(services.WithSession(r.Context(), s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

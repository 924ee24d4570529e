package main

import (
	"net/http"
	"time"

	"github.com/diewo77/costopro/gate"
	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/i18n"
	"github.com/diewo77/costopro/internal/handlers"
	"github.com/diewo77/costopro/internal/policy"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	deps    *Deps
	handler http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(deps *Deps) *App {
	app := &App{mux: http.NewServeMux(), deps: deps}
	app.setupRoutes()
	app.handler = withPreferences(
		deps.Sessions.Middleware(
			handlers.LoadSession(deps.Auth, deps.Log)(app.mux)))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	log := a.deps.Log
	ah := handlers.NewAuthHandler(a.deps.Auth, a.deps.Sessions, log)
	ph := handlers.NewPricingHandler(a.deps.Catalog, a.deps.Rates, log)
	ch := handlers.NewCatalogHandler(a.deps.Catalog, log)
	uh := handlers.NewUserHandler(a.deps.Identity, log)

	// public
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /api/zones", ph.Zones)

	// authenticated
	a.mux.Handle("GET /me", a.requireAuth(http.HandlerFunc(ah.Me)))
	a.mux.Handle("GET /api/dashboard", a.requireAuth(http.HandlerFunc(ch.Dashboard)))
	a.mux.Handle("GET /api/exchange-rate", a.requireAuth(http.HandlerFunc(ph.Rate)))

	// permission-checked
	a.mux.Handle("POST /api/exchange-rate",
		a.requirePermission(policy.ResourceSettings, gate.ActionUpdate, ph.SetRate))
	a.mux.Handle("POST /api/pricing",
		a.requirePermission(policy.ResourcePricing, gate.ActionCompute, ph.Compute))

	a.mux.Handle("GET /api/catalog",
		a.requirePermission(policy.ResourceCatalog, gate.ActionList, ch.List))
	a.mux.Handle("POST /api/catalog",
		a.requirePermission(policy.ResourceCatalog, gate.ActionCreate, ch.Create))
	a.mux.Handle("POST /api/catalog/{id}/delete",
		a.requirePermission(policy.ResourceCatalog, gate.ActionDelete, ch.Delete))

	a.mux.Handle("GET /api/users",
		a.requirePermission(policy.ResourceUser, gate.ActionList, uh.List))
	a.mux.Handle("POST /api/users",
		a.requirePermission(policy.ResourceUser, gate.ActionCreate, uh.Create))
	a.mux.Handle("POST /api/users/{id}/delete",
		a.requireAuth(a.deps.AuthGate.RequireUserDeletion("id")(http.HandlerFunc(uh.Delete))))
}

// requireAuth wraps a handler to require a live session.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return a.deps.Sessions.RequireAuth(next)
}

// requirePermission wraps a handler to require auth plus a role permission.
func (a *App) requirePermission(resourceType string, action gate.Action, h http.HandlerFunc) http.Handler {
	return a.requireAuth(a.deps.AuthGate.RequirePermission(resourceType, action)(h))
}

// withPreferences injects the language from the lang cookie, the lang query
// parameter or Accept-Language, in that order of precedence (query wins).
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
			http.SetCookie(w, &http.Cookie{
				Name:     "lang",
				Value:    lang,
				Path:     "/",
				MaxAge:   86400 * 365,
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging logs every request with a request id, echoed in X-Request-ID.
func withLogging(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

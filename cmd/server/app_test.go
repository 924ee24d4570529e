package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/costopro/internal/config"
	"github.com/diewo77/costopro/internal/logx"
	"github.com/diewo77/costopro/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{
		Dev:              true,
		Backend:          config.BackendMemory,
		ExchangeRate:     3.75,
		CredentialScheme: "plain",
		SessionSecret:    "test-secret",
		ProfileCacheTTL:  time.Minute,
	}}
	deps, err := NewDeps(store.NewMemoryKV(), cfg, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return NewApp(deps)
}

type client struct {
	t      *testing.T
	app    *App
	cookie *http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.app.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, app *App, email string) *client {
	t.Helper()
	c := &client{t: t, app: app}
	rec := c.do(http.MethodPost, "/login", map[string]string{"email": email, "credential": "123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session" {
			c.cookie = ck
		}
	}
	if c.cookie == nil {
		t.Fatal("no session cookie")
	}
	return c
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	anon := &client{t: t, app: app}

	rec := anon.do(http.MethodPost, "/login", map[string]string{"email": "admin@costopro.com", "credential": "bad"})
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid_credentials") {
		t.Fatalf("bad credential: %d %s", rec.Code, rec.Body)
	}
	if rec := anon.do(http.MethodGet, "/me", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous /me: %d", rec.Code)
	}

	admin := login(t, app, "admin@costopro.com")
	rec = admin.do(http.MethodGet, "/me", nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "credential") {
		t.Fatalf("/me: %d %s", rec.Code, rec.Body)
	}
}

func TestPricingScenarios(t *testing.T) {
	app := newTestApp(t)
	viewer := login(t, app, "visor@costopro.com")

	tests := []struct {
		name          string
		body          map[string]any
		unitCost      float64
		suggested     float64
		formattedUnit string
	}{
		{
			name:          "boxed base currency",
			body:          map[string]any{"price_total": 1000, "quantity": 10, "unit_type": "boxed", "units_per_package": 12, "margin_percent": 30},
			unitCost:      1000.0 / 120,
			suggested:     1000.0 / 120 * 1.3,
			formattedUnit: "8.33",
		},
		{
			name: "loose foreign currency",
			body: map[string]any{"price_total": "100", "currency": "foreign", "quantity": 50, "unit_type": "loose", "margin_percent": 50,
				"costs": map[string]any{"transport": 20, "labor": 30}},
			unitCost:      8.5,
			suggested:     12.75,
			formattedUnit: "8.50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := viewer.do(http.MethodPost, "/api/pricing", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d: %s", rec.Code, rec.Body)
			}
			var resp struct {
				Result struct {
					UnitCost       float64 `json:"unit_cost"`
					SuggestedPrice float64 `json:"suggested_price"`
				} `json:"result"`
				Assessment *struct {
					Status string `json:"status"`
				} `json:"assessment"`
				Formatted map[string]string `json:"formatted"`
			}
			decodeBody(t, rec, &resp)
			if diff := resp.Result.UnitCost - tt.unitCost; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("unit cost = %v, want %v", resp.Result.UnitCost, tt.unitCost)
			}
			if diff := resp.Result.SuggestedPrice - tt.suggested; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("suggested = %v, want %v", resp.Result.SuggestedPrice, tt.suggested)
			}
			if resp.Assessment == nil {
				t.Fatal("expected an assessment")
			}
			if !strings.HasPrefix(resp.Formatted["unit_cost"], "S/ ") || !strings.HasSuffix(resp.Formatted["unit_cost"], tt.formattedUnit[len(tt.formattedUnit)-2:]) {
				t.Errorf("formatted unit cost = %q", resp.Formatted["unit_cost"])
			}
		})
	}
}

func TestViewerCannotSave(t *testing.T) {
	app := newTestApp(t)
	viewer := login(t, app, "visor@costopro.com")
	user := login(t, app, "user@costopro.com")
	input := map[string]any{"product_name": "Aceite", "price_total": 240, "quantity": 2, "units_per_package": 12}

	if rec := viewer.do(http.MethodPost, "/api/catalog", input); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer save: %d %s", rec.Code, rec.Body)
	}
	rec := viewer.do(http.MethodGet, "/api/catalog", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("catalog should be empty: %d %s", rec.Code, rec.Body)
	}

	rec = user.do(http.MethodPost, "/api/catalog", input)
	if rec.Code != http.StatusCreated {
		t.Fatalf("user save: %d %s", rec.Code, rec.Body)
	}
	var saved struct {
		ID         int64  `json:"id"`
		AuthorName string `json:"author_name"`
	}
	decodeBody(t, rec, &saved)

	if rec := viewer.do(http.MethodPost, "/api/catalog/"+itoa(saved.ID)+"/delete", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer delete: %d", rec.Code)
	}

	rec = viewer.do(http.MethodGet, "/api/dashboard", nil)
	var dash struct {
		InventoryValue float64 `json:"inventory_value"`
		ProductCount   int     `json:"product_count"`
		Role           string  `json:"role"`
	}
	decodeBody(t, rec, &dash)
	if dash.ProductCount != 1 || dash.InventoryValue != 240 || dash.Role != "viewer" {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	if rec := user.do(http.MethodPost, "/api/catalog/"+itoa(saved.ID)+"/delete", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("user delete: %d", rec.Code)
	}
}

func TestSaveValidationIsTranslated(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "user@costopro.com")
	rec := user.do(http.MethodPost, "/api/catalog?lang=en", map[string]any{"price_total": 10})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"details"`
	}
	decodeBody(t, rec, &body)
	if body.Error != "validation_failed" || body.Message != "Key data is missing." {
		t.Fatalf("unexpected body %+v", body)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "product_name" {
		t.Fatalf("unexpected details %+v", body.Details)
	}
}

func TestUserManagement(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@costopro.com")
	user := login(t, app, "user@costopro.com")

	rec := admin.do(http.MethodPost, "/api/users/1/delete", nil)
	if rec.Code != http.StatusForbidden || !strings.Contains(rec.Body.String(), "protected_user") {
		t.Fatalf("delete bootstrap admin: %d %s", rec.Code, rec.Body)
	}
	if rec := user.do(http.MethodPost, "/api/users", map[string]string{"name": "X", "email": "x@c.com", "credential": "1"}); rec.Code != http.StatusForbidden {
		t.Fatalf("user creating user: %d", rec.Code)
	}

	newUser := map[string]string{"name": "Ana", "email": "ana@costopro.com", "credential": "secreto", "role": "viewer"}
	if rec := admin.do(http.MethodPost, "/api/users", newUser); rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}
	if rec := admin.do(http.MethodPost, "/api/users", newUser); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: %d %s", rec.Code, rec.Body)
	}

	rec = admin.do(http.MethodGet, "/api/users", nil)
	if strings.Contains(rec.Body.String(), "credential") {
		t.Fatal("credentials must not be rendered")
	}
	var users []struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &users)
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}

	ana := login(t, app, "ana@costopro.com")
	if rec := admin.do(http.MethodPost, "/api/users/4/delete", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete ana: %d", rec.Code)
	}
	if rec := ana.do(http.MethodGet, "/me", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user's session should be rejected, got %d", rec.Code)
	}
}

func TestProtectedDeletionForEveryRole(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "user@costopro.com")
	viewer := login(t, app, "visor@costopro.com")

	tests := []struct {
		name   string
		c      *client
		path   string
		status int
		code   string
	}{
		{"viewer deletes bootstrap admin", viewer, "/api/users/1/delete", http.StatusForbidden, "protected_user"},
		{"user deletes own account", user, "/api/users/2/delete", http.StatusForbidden, "protected_user"},
		{"viewer deletes own account", viewer, "/api/users/3/delete", http.StatusForbidden, "protected_user"},
		{"user deletes another user", user, "/api/users/3/delete", http.StatusForbidden, "forbidden"},
		{"malformed id", user, "/api/users/abc/delete", http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.c.t = t
			rec := tt.c.do(http.MethodPost, tt.path, nil)
			var body struct {
				Error string `json:"error"`
			}
			decodeBody(t, rec, &body)
			if rec.Code != tt.status || body.Error != tt.code {
				t.Fatalf("got %d %q, want %d %q", rec.Code, body.Error, tt.status, tt.code)
			}
		})
	}

	anon := &client{t: t, app: app}
	if rec := anon.do(http.MethodPost, "/api/users/1/delete", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete: %d", rec.Code)
	}
}

func TestExchangeRate(t *testing.T) {
	app := newTestApp(t)
	user := login(t, app, "user@costopro.com")
	viewer := login(t, app, "visor@costopro.com")

	if rec := viewer.do(http.MethodPost, "/api/exchange-rate", map[string]any{"rate": 4}); rec.Code != http.StatusForbidden {
		t.Fatalf("viewer: %d", rec.Code)
	}
	if rec := user.do(http.MethodPost, "/api/exchange-rate", map[string]any{"rate": 0}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero rate: %d", rec.Code)
	}
	if rec := user.do(http.MethodPost, "/api/exchange-rate", map[string]any{"rate": "3.9"}); rec.Code != http.StatusOK {
		t.Fatalf("set rate: %d %s", rec.Code, rec.Body)
	}
	rec := viewer.do(http.MethodGet, "/api/exchange-rate", nil)
	var body map[string]float64
	decodeBody(t, rec, &body)
	if body["rate"] != 3.9 {
		t.Fatalf("rate = %v", body["rate"])
	}
}

func TestZonesAreGrouped(t *testing.T) {
	app := newTestApp(t)
	rec := (&client{t: t, app: app}).do(http.MethodGet, "/api/zones", nil)
	var body struct {
		Default string `json:"default"`
		Groups  []struct {
			Group string            `json:"group"`
			Zones []json.RawMessage `json:"zones"`
		} `json:"groups"`
	}
	decodeBody(t, rec, &body)
	if body.Default != "lima_centro" || len(body.Groups) != 3 {
		t.Fatalf("unexpected zones %+v", body)
	}
	total := 0
	for _, g := range body.Groups {
		total += len(g.Zones)
	}
	if total != 11 {
		t.Fatalf("expected 11 zones, got %d", total)
	}
}

func TestWithLoggingSetsRequestID(t *testing.T) {
	h := withLogging(logx.Nop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("code=%d id=%q", rec.Code, rec.Header().Get("X-Request-ID"))
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

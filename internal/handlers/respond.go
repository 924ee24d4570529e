// Package handlers exposes the pricing, catalog and identity services as a
// JSON API.
package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/diewo77/costopro/gate"
	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/i18n"
	"github.com/diewo77/costopro/internal/money"
	"github.com/diewo77/costopro/internal/services"
	"github.com/rs/zerolog"
)

// FieldError is one translated validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func lang(r *http.Request) string { return i18n.LangFromContext(r.Context()) }

func fail(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	httpx.JSONError(w, status, code, i18n.T(lang(r), code), details)
}

// writeError maps service errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(w, r, http.StatusUnprocessableEntity, "validation_failed", fieldErrors(lang(r), ve))
	case errors.Is(err, services.ErrAuth):
		fail(w, r, http.StatusUnauthorized, "invalid_credentials", nil)
	case errors.Is(err, services.ErrProtectedEntity):
		fail(w, r, http.StatusForbidden, "protected_user", nil)
	case errors.Is(err, services.ErrAuthorization), errors.Is(err, gate.ErrUnauthorized):
		fail(w, r, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, services.ErrConflict):
		fail(w, r, http.StatusConflict, "email_taken", nil)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
	}
}

func fieldErrors(lang string, ve *services.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(ve.Violations))
	for field, code := range ve.Violations {
		out = append(out, FieldError{Field: field, Code: code, Message: i18n.T(lang, code)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// decode reads a JSON body, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		fail(w, r, http.StatusBadRequest, "bad_request", nil)
		return false
	}
	return true
}

// formatter picks the money locale of the request language.
func formatter(r *http.Request) *money.Formatter {
	if lang(r) == "en" {
		return money.NewFormatter("en-US")
	}
	return money.NewFormatter("es-PE")
}

// Package i18n translates message codes for API responses.
// Spanish is the default language; English is available.
package i18n

import (
	"context"
	"strings"
)

const DefaultLang = "es"

var translations = map[string]map[string]string{
	"es": {
		// market advisory
		"market_cheap":       "Precio riesgoso (Muy bajo).",
		"market_competitive": "Precio Óptimo.",
		"market_expensive":   "Precio elevado para la zona.",
		// zone groups
		"zone_group_metro":    "Lima Metropolitana",
		"zone_group_province": "Provincias",
		"zone_group_digital":  "Canales Digitales",
		// validation
		"required":             "Requerido",
		"must_be_positive":     "Debe ser mayor que cero",
		"must_not_be_negative": "No puede ser negativo",
		"out_of_range":         "Fuera de rango",
		"invalid_email":        "Correo inválido",
		"invalid_choice":       "Opción inválida",
		// errors
		"invalid_credentials": "Credenciales inválidas.",
		"forbidden":           "No tienes permisos para esta operación.",
		"protected_user":      "No puedes eliminar este usuario.",
		"email_taken":         "El correo ya existe.",
		"validation_failed":   "Faltan datos clave para guardar.",
		"unauthenticated":     "Inicia sesión para continuar.",
		"bad_request":         "Solicitud inválida.",
		"internal_error":      "Error interno del servidor.",
	},
	"en": {
		"market_cheap":       "Risky price (too low).",
		"market_competitive": "Optimal price.",
		"market_expensive":   "Price is high for this zone.",

		"zone_group_metro":    "Lima Metropolitan Area",
		"zone_group_province": "Provinces",
		"zone_group_digital":  "Digital Channels",

		"required":             "Required",
		"must_be_positive":     "Must be greater than zero",
		"must_not_be_negative": "Must not be negative",
		"out_of_range":         "Out of range",
		"invalid_email":        "Invalid email",
		"invalid_choice":       "Invalid choice",

		"invalid_credentials": "Invalid credentials.",
		"forbidden":           "You are not allowed to perform this operation.",
		"protected_user":      "This user cannot be deleted.",
		"email_taken":         "Email already exists.",
		"validation_failed":   "Key data is missing.",
		"unauthenticated":     "Sign in to continue.",
		"bad_request":         "Invalid request.",
		"internal_error":      "Internal server error.",
	},
}

// T returns the translation of code in lang, falling back to the default
// language and finally to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// DetectLanguage picks the first supported language of an Accept-Language
// header. Quality values are ignored; header order is trusted.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if Supported(base) {
			return base
		}
	}
	return DefaultLang
}

type langKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the request language or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

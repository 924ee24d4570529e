// Package validation collects field violations as machine-readable codes.
// Codes are translated for display by the i18n package.
package validation

import (
	"math"
	"net/mail"
	"strings"
)

// Violations maps a field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) || val <= 0 {
		v.Add(field, "must_be_positive")
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if math.IsNaN(val) || val < 0 {
		v.Add(field, "must_not_be_negative")
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

// Email checks for a single bare address ("a@b.c", no display name).
func Email(field, value string, v Violations) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.Add(field, "invalid_email")
	}
}

// OneOf checks value against a closed set.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, "invalid_choice")
}

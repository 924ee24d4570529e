package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/diewo77/costopro/internal/policy"
	"github.com/diewo77/costopro/validation"
)

var (
	// ErrAuth means no user matches both email and credential.
	ErrAuth = errors.New("invalid_credentials")
	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("email_taken")

	ErrAuthorization   = policy.ErrAuthorization
	ErrProtectedEntity = policy.ErrProtectedEntity
)

// ValidationError carries per-field violation codes.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func validationErr(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

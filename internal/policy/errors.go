package policy

import (
	"errors"
	"fmt"

	"github.com/diewo77/costopro/gate"
)

var (
	// ErrAuthorization is returned when the caller's role lacks the permission.
	// It matches gate.ErrUnauthorized with errors.Is.
	ErrAuthorization = fmt.Errorf("operation not permitted: %w", gate.ErrUnauthorized)
	// ErrProtectedEntity is returned when deleting the bootstrap admin or oneself.
	ErrProtectedEntity = errors.New("protected user cannot be deleted")
)

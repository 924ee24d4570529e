package policy

import (
	"context"
	"fmt"

	"github.com/diewo77/costopro/gate"
	"github.com/diewo77/costopro/internal/models"
)

// GuardUserDeletion applies the structural deletion rule for every role:
// the bootstrap admin and the caller's own account cannot be removed.
func GuardUserDeletion(callerID, targetID uint) error {
	switch targetID {
	case models.BootstrapAdminID:
		return fmt.Errorf("%w: bootstrap administrator", ErrProtectedEntity)
	case callerID:
		return fmt.Errorf("%w: own account", ErrProtectedEntity)
	}
	return nil
}

// ProtectedUserPolicy is the gate policy form of GuardUserDeletion, registered
// for the user resource. Resources are user ids or *models.User.
type ProtectedUserPolicy struct{}

func NewProtectedUserPolicy() *ProtectedUserPolicy { return &ProtectedUserPolicy{} }

// Check returns ErrProtectedEntity when callerID may not delete resource.
func (p *ProtectedUserPolicy) Check(callerID uint, resource any) error {
	switch r := resource.(type) {
	case uint:
		return GuardUserDeletion(callerID, r)
	case *models.User:
		return GuardUserDeletion(callerID, r.ID)
	case models.User:
		return GuardUserDeletion(callerID, r.ID)
	}
	return fmt.Errorf("%w: unknown user resource %T", ErrProtectedEntity, resource)
}

// Can allows every non-delete action and denies deleting protected users.
func (p *ProtectedUserPolicy) Can(_ context.Context, callerID uint, action gate.Action, resource any) bool {
	if action != gate.ActionDelete {
		return true
	}
	return p.Check(callerID, resource) == nil
}

package gate

import "context"

// Policy adds resource-specific rules on top of profile permissions.
// U is the subject type (uint for user ids in this project).
type Policy[U any] interface {
	// Can reports whether user may perform action on resource.
	// resource is nil for list/create checks.
	Can(ctx context.Context, user U, action Action, resource any) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc[U any] func(ctx context.Context, user U, action Action, resource any) bool

// Can calls f.
func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, resource any) bool {
	return f(ctx, user, action, resource)
}

package policy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/costopro/auth"
	"github.com/diewo77/costopro/gate"
	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/i18n"
	"github.com/diewo77/costopro/internal/models"
)

// UserLookup finds a user by id; nil with a nil error means not found.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// RoleResolver maps a user id to the profile of the user's role.
type RoleResolver struct {
	Users UserLookup
}

// Resolve returns nil when the user no longer exists or holds an unknown role.
func (r *RoleResolver) Resolve(ctx context.Context, userID uint) (gate.Profile, error) {
	u, err := r.Users.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return ProfileFor(u.Role), nil
}

// AuthGate is the HTTP-side authorization point: session user id → role
// profile (cached) → gate permission, plus the protected-user policy.
type AuthGate struct {
	Gate          *gate.HybridGate[uint]
	CacheResolver *gate.CachedResolver[uint]

	protected *ProtectedUserPolicy
}

// NewAuthGate wires the role resolver behind a TTL cache.
func NewAuthGate(users UserLookup, cacheTTL time.Duration) *AuthGate {
	cached := gate.NewCachedResolver[uint](&RoleResolver{Users: users}, cacheTTL)
	g := gate.NewHybridGate[uint](cached)
	protected := NewProtectedUserPolicy()
	g.Register(ResourceUser, protected)
	return &AuthGate{Gate: g, CacheResolver: cached, protected: protected}
}

// Authorize checks the current session user against resourceType:action.
func (ag *AuthGate) Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	return ag.Gate.Authorize(ctx, userID, action, resourceType, resource)
}

// CanProfile checks only the role permission of the session user.
func (ag *AuthGate) CanProfile(ctx context.Context, action gate.Action, resourceType string) bool {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return false
	}
	return ag.Gate.CanProfile(ctx, userID, action, resourceType)
}

// InvalidateUser drops a cached profile, e.g. after the user was deleted.
func (ag *AuthGate) InvalidateUser(userID uint) {
	ag.CacheResolver.Invalidate(userID)
}

// AuthorizeUserDeletion checks the session user deleting targetID. The
// protected-user policy runs before the role permission so that its
// ErrProtectedEntity answer is the same for every role.
func (ag *AuthGate) AuthorizeUserDeletion(ctx context.Context, targetID uint) error {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return gate.ErrUnauthorized
	}
	if err := ag.protected.Check(userID, targetID); err != nil {
		return err
	}
	if err := ag.Gate.Authorize(ctx, userID, gate.ActionDelete, ResourceUser, targetID); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorization, err)
	}
	return nil
}

// RequirePermission returns middleware answering 401 without a session and
// 403 when the session user's role lacks resourceType:action.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.LangFromContext(r.Context())
			if _, ok := auth.UserIDFromContext(r.Context()); !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", i18n.T(lang, "unauthenticated"), nil)
				return
			}
			if !ag.CanProfile(r.Context(), action, resourceType) {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", i18n.T(lang, "forbidden"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUserDeletion guards a route deleting the user named by the param
// path value: 401 without a session, 400 for a malformed id, 403
// protected_user for protected targets and 403 forbidden otherwise.
func (ag *AuthGate) RequireUserDeletion(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.LangFromContext(r.Context())
			if _, ok := auth.UserIDFromContext(r.Context()); !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthenticated", i18n.T(lang, "unauthenticated"), nil)
				return
			}
			target, err := strconv.ParseUint(r.PathValue(param), 10, 64)
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "bad_request", i18n.T(lang, "bad_request"), nil)
				return
			}
			switch err := ag.AuthorizeUserDeletion(r.Context(), uint(target)); {
			case errors.Is(err, ErrProtectedEntity):
				httpx.JSONError(w, http.StatusForbidden, "protected_user", i18n.T(lang, "protected_user"), nil)
				return
			case err != nil:
				httpx.JSONError(w, http.StatusForbidden, "forbidden", i18n.T(lang, "forbidden"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

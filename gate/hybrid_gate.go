// Package gate is a small authorization toolkit: subjects resolve to profiles
// (named permission sets) and resource policies add per-resource rules on top.
//
// The package knows nothing about the application's models. U is the subject
// type; this project uses uint user ids.
package gate

import (
	"context"
	"fmt"
)

// HybridGate combines profile permissions with resource policies.
//
// Authorization flow:
//  1. the subject must be non-zero
//  2. its profile must grant resource:action
//  3. if a policy is registered for the resource type and a resource is given,
//     the policy must agree
type HybridGate[U comparable] struct {
	resolver ProfileResolver[U]
	policies map[string]Policy[U]
}

// NewHybridGate creates a gate backed by resolver.
func NewHybridGate[U comparable](resolver ProfileResolver[U]) *HybridGate[U] {
	return &HybridGate[U]{
		resolver: resolver,
		policies: make(map[string]Policy[U]),
	}
}

// Register adds a resource policy, replacing any previous one for the type.
func (g *HybridGate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize returns nil when allowed and an error wrapping ErrUnauthorized otherwise.
func (g *HybridGate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	profile, err := g.profile(ctx, user)
	if err != nil {
		return err
	}

	perm := NewPermission(resourceType, action)
	if !profile.HasPermission(perm) {
		return fmt.Errorf("%w: profile %q lacks %s", ErrUnauthorized, profile.Name(), perm)
	}

	if resource != nil {
		if policy, ok := g.policies[resourceType]; ok && !policy.Can(ctx, user, action, resource) {
			return fmt.Errorf("%w: %s denied by %s policy", ErrUnauthorized, action, resourceType)
		}
	}
	return nil
}

// Can is Authorize as a bool.
func (g *HybridGate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanProfile checks only the profile permission, ignoring resource policies.
// Useful before a specific resource is loaded.
func (g *HybridGate[U]) CanProfile(ctx context.Context, user U, action Action, resourceType string) bool {
	profile, err := g.profile(ctx, user)
	if err != nil {
		return false
	}
	return profile.HasPermission(NewPermission(resourceType, action))
}

func (g *HybridGate[U]) profile(ctx context.Context, user U) (Profile, error) {
	var zero U
	if user == zero {
		return nil, ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrNoProfile)
	}
	return profile, nil
}

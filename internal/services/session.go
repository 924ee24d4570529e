package services

import (
	"context"

	"github.com/diewo77/costopro/internal/models"
)

// Session is the authenticated caller. A nil *Session (or one without a
// user) is an anonymous caller and holds no role.
type Session struct {
	User *models.User
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool { return s != nil && s.User != nil }

// Role returns the session role, empty when anonymous.
func (s *Session) Role() models.Role {
	if !s.Active() {
		return ""
	}
	return s.User.Role
}

// UserID returns the session user id, 0 when anonymous.
func (s *Session) UserID() uint {
	if !s.Active() {
		return 0
	}
	return s.User.ID
}

// AuthorName is the name recorded on catalog records.
func (s *Session) AuthorName() string {
	if !s.Active() {
		return ""
	}
	return s.User.Name
}

type sessionKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the request session, nil when anonymous.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

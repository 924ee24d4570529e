package services

import (
	"context"

	"github.com/diewo77/costopro/internal/models"
	"github.com/rs/zerolog"
)

// AuthService checks credentials against the identity store.
type AuthService struct {
	users    *IdentityService
	verifier CredentialVerifier
	log      zerolog.Logger
}

func NewAuthService(users *IdentityService, verifier CredentialVerifier, log zerolog.Logger) *AuthService {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	return &AuthService{users: users, verifier: verifier, log: log}
}

// Authenticate returns the user matching both email and credential, or ErrAuth.
func (a *AuthService) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !a.verifier.Verify(u.Credential, credential) {
		a.log.Warn().Str("email", email).Msg("authentication failed")
		return nil, ErrAuth
	}
	return u, nil
}

// Login authenticates and returns the new active session.
func (a *AuthService) Login(ctx context.Context, email, credential string) (*Session, error) {
	u, err := a.Authenticate(ctx, email, credential)
	if err != nil {
		return nil, err
	}
	a.log.Info().Uint("user_id", u.ID).Msg("login")
	return &Session{User: u}, nil
}

// Logout clears s.
func (a *AuthService) Logout(s *Session) {
	if s == nil {
		return
	}
	if s.User != nil {
		a.log.Info().Uint("user_id", s.User.ID).Msg("logout")
	}
	s.User = nil
}

// Resume rebuilds the session of a user id carried by a cookie; nil when
// the user no longer exists.
func (a *AuthService) Resume(ctx context.Context, userID uint) (*Session, error) {
	u, err := a.users.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return &Session{User: u}, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/diewo77/costopro/internal/models"
	"github.com/diewo77/costopro/internal/policy"
	"github.com/diewo77/costopro/internal/store"
	"github.com/diewo77/costopro/validation"
	"github.com/rs/zerolog"
)

// NewUserInput is the candidate of AddUser. Credential is the plain value;
// it is stored through the configured verifier.
type NewUserInput struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Credential string      `json:"credential"`
	Role       models.Role `json:"role"`
}

// IdentityService owns the user directory.
type IdentityService struct {
	repo     store.UserRepository
	verifier CredentialVerifier
	log      zerolog.Logger

	// mu serializes load-modify-save cycles of the directory.
	mu       sync.Mutex
	onDelete []func(id uint)
}

func NewIdentityService(repo store.UserRepository, verifier CredentialVerifier, log zerolog.Logger) *IdentityService {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	return &IdentityService{repo: repo, verifier: verifier, log: log}
}

// OnDelete registers a callback run after a user was removed.
func (s *IdentityService) OnDelete(fn func(id uint)) {
	s.onDelete = append(s.onDelete, fn)
}

// AddUser validates and appends a user with a fresh id. Duplicate emails
// fail with ErrConflict and leave the directory unchanged.
func (s *IdentityService) AddUser(ctx context.Context, session *Session, in NewUserInput) (*models.User, error) {
	if err := policy.Authorize(session.Role(), policy.OpCreateUser); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	validation.Email("email", in.Email, v)
	validation.Required("credential", in.Credential, v)
	validation.OneOf("role", string(in.Role), roleNames(), v)
	if err := validationErr(v); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	var maxID uint
	for _, u := range users {
		if u.Email == in.Email {
			return nil, fmt.Errorf("%w: %s", ErrConflict, in.Email)
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	credential, err := s.verifier.Hash(in.Credential)
	if err != nil {
		return nil, err
	}
	u := models.User{ID: maxID + 1, Name: in.Name, Email: in.Email, Credential: credential, Role: in.Role}
	if err := s.repo.Save(ctx, append(users, u)); err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", u.ID).Str("role", string(u.Role)).Msg("user created")
	created := u.Redacted()
	return &created, nil
}

// DeleteUser removes id. Anonymous callers are rejected; for everyone else
// the protected-entity rule comes first so that it holds for every role.
// Unknown ids are a no-op.
func (s *IdentityService) DeleteUser(ctx context.Context, session *Session, id uint) error {
	if !session.Active() {
		return ErrAuthorization
	}
	if err := policy.GuardUserDeletion(session.UserID(), id); err != nil {
		return err
	}
	if err := policy.Authorize(session.Role(), policy.OpDeleteUser); err != nil {
		return err
	}

	s.mu.Lock()
	users, err := s.repo.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	kept := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		s.mu.Unlock()
		return nil
	}
	err = s.repo.Save(ctx, kept)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info().Uint("user_id", id).Uint("by", session.UserID()).Msg("user deleted")
	for _, fn := range s.onDelete {
		fn(id)
	}
	return nil
}

// ListUsers returns the directory. Credentials are only shown to admins.
func (s *IdentityService) ListUsers(ctx context.Context, session *Session) ([]models.User, error) {
	if err := policy.Authorize(session.Role(), policy.OpListUsers); err != nil {
		return nil, err
	}
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session.Role() != models.RoleAdmin {
		for i := range users {
			users[i] = users[i].Redacted()
		}
	}
	return users, nil
}

// FindByEmail returns the user with exactly this (trimmed) email, or nil.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	return s.find(ctx, func(u *models.User) bool { return u.Email == email })
}

// FindByID returns the user with id, or nil.
func (s *IdentityService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.find(ctx, func(u *models.User) bool { return u.ID == id })
}

func (s *IdentityService) find(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func roleNames() []string {
	roles := models.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

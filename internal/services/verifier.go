package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides how credentials are stored and compared.
type CredentialVerifier interface {
	// Hash transforms a presented credential into its stored form.
	Hash(credential string) (string, error)
	// Verify reports whether presented matches the stored form.
	Verify(stored, presented string) bool
}

// PlainVerifier stores credentials as given and compares them in constant time.
type PlainVerifier struct{}

func (PlainVerifier) Hash(credential string) (string, error) { return credential, nil }

func (PlainVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(credential string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(credential), cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(b), nil
}

func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// NewVerifier returns the verifier for a configured scheme ("plain" or "bcrypt").
func NewVerifier(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	}
	return nil, errors.New("unknown credential scheme: " + scheme)
}

// Package auth guards the admin back-office behind a single
// configuration-seeded account.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sk-equipments/storefront/internal/shared"
)

// Service validates credentials against the admin account configured through
// the environment. There is no user table; the storefront has exactly one
// operator.
type Service struct {
	email        string
	passwordHash string
}

// NewService constructs a Service from the configured admin credentials.
func NewService(email, passwordHash string) *Service {
	return &Service{email: email, passwordHash: passwordHash}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(email, password string) error {
	if !strings.EqualFold(strings.TrimSpace(email), s.email) {
		// Keep timing uniform for unknown emails.
		_ = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
		return shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return shared.ErrInvalidCredentials
	}
	return nil
}

// Email returns the configured admin email.
func (s *Service) Email() string {
	return s.email
}

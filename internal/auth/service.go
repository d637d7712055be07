// Package auth guards the admin console. There is a single administrator
// account whose credentials come from configuration; the password is
// bcrypt-hashed at startup and only the hash is kept in memory.
package auth

import (
	"fmt"
	"strings"

	"github.com/libriscore/libris/internal/config"
)

// Service verifies admin credentials.
type Service struct {
	username     string
	passwordHash string
}

// NewService hashes the configured admin password and returns the
// credential verifier.
func NewService(cfg config.Admin) (*Service, error) {
	hash, err := HashPassword(cfg.Password, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Service{
		username:     cfg.Username,
		passwordHash: hash,
	}, nil
}

// Authenticate checks a username/password pair against the admin account.
// The password check runs even on a username mismatch to keep timing
// uniform.
func (s *Service) Authenticate(username, password string) error {
	usernameOK := strings.EqualFold(username, s.username)
	passwordErr := CheckPassword(password, s.passwordHash)
	if !usernameOK || passwordErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Username returns the configured admin username.
func (s *Service) Username() string {
	return s.username
}

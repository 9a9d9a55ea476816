package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const RoleOrganizer = "organizer"

type LoginInput struct {
	Password string `json:"password"`
}

// AuthService checks the shared organizer password. There are no user
// accounts: a successful login yields the organizer role.
type AuthService interface {
	Enabled() bool
	Login(ctx context.Context, input LoginInput) error
}

type authService struct {
	passwordHash []byte
}

// NewAuthService with an empty hash returns a service whose Login always
// fails with ErrAuthDisabled.
func NewAuthService(passwordHash string) AuthService {
	return &authService{passwordHash: []byte(passwordHash)}
}

func (s *authService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if !s.Enabled() {
		return ErrAuthDisabled
	}
	if input.Password == "" {
		return ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"kind-link-bridge/internal/domain"
	"kind-link-bridge/pkg/utils"
)

type AccountService struct {
	users domain.UserRepository
}

func NewAccountService(users domain.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Signup creates a user with a bcrypt-hashed password. The returned user's
// PasswordHash is never serialized.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, domain.ErrInvalidInput
		}
		return nil, err
	}
	u := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login is an exact, case-sensitive email lookup followed by a hash check.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

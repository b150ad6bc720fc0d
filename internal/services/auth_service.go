package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/glensd/personalExpenseTracker/internal/auth"
	"github.com/glensd/personalExpenseTracker/internal/core"
)

// AuthService registers users and exchanges credentials for bearer tokens.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, in core.RegisterInput) (core.User, error) {
	if err := in.Validate(); err != nil {
		return core.User{}, err
	}
	taken, err := s.users.EmailTaken(ctx, in.Email)
	if err != nil {
		return core.User{}, fmt.Errorf("register: %w", err)
	}
	if taken {
		return core.User{}, errEmailTaken()
	}

	// max=72 counts runes; bcrypt limits bytes.
	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return core.User{}, core.NewValidationError("password", "The password field must not be greater than 72 characters.")
	}
	if err != nil {
		return core.User{}, err
	}
	user, err := s.users.CreateUser(ctx, in.Name, in.Email, hash)
	if errors.Is(err, core.ErrConflict) {
		return core.User{}, errEmailTaken()
	}
	return user, err
}

// Login returns a token for valid credentials and ErrUnauthorized otherwise.
func (s *AuthService) Login(ctx context.Context, in core.LoginInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, core.ErrNotFound) {
		return "", core.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return "", core.ErrUnauthorized
	}

	return s.tokens.Issue(user.ID)
}

// Authenticate resolves a bearer token to a user id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	id, err := s.tokens.Verify(ctx, token)
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrRevokedToken) {
		return 0, core.ErrUnauthorized
	}
	return id, err
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.tokens.Revoke(ctx, token)
	if errors.Is(err, auth.ErrInvalidToken) {
		return core.ErrUnauthorized
	}
	return err
}

func errEmailTaken() error {
	return core.NewValidationError("email", "The email has already been taken.")
}

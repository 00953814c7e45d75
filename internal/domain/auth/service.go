package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"valora/internal/core/apperror"
	"valora/pkg/logger"
)

// Service validates credentials against the credential store and
// establishes sessions.
type Service struct {
	users  UserRepository
	tokens *TokenService
}

// NewService creates a new auth service.
func NewService(users UserRepository, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Authenticate checks the submitted credentials and establishes a session.
// Unknown username and wrong password return the identical error so the
// response never reveals which part was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.NewMissingCredentials()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	logger.Info(ctx, "login succeeded", "username", user.Username)

	return &Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
	}, nil
}

// EnsureDefaultUser creates the default account if no account with that
// username exists. An existing account is never overwritten. This is a
// provisioning convenience, not part of the request path.
func (s *Service) EnsureDefaultUser(ctx context.Context, username, password string) error {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("check default user: %w", err)
	}
	if exists {
		logger.Debug(ctx, "default user already exists", "username", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	user := &User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create default user: %w", err)
	}

	logger.Info(ctx, "default user created", "username", username)
	return nil
}

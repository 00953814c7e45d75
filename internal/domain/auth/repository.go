package auth

import (
	"context"
)

// UserRepository defines credential store access.
type UserRepository interface {
	// GetByUsername looks up a user by exact, case-sensitive username.
	// Returns apperror.CodeNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Exists reports whether a user with the username exists.
	Exists(ctx context.Context, username string) (bool, error)

	// Create inserts a new user. The generated id is written back.
	Create(ctx context.Context, user *User) error
}

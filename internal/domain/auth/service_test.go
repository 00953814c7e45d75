package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"valora/internal/core/apperror"
)

// memUserRepo is an in-memory credential store for tests.
type memUserRepo struct {
	users  map[string]*User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *memUserRepo) Create(ctx context.Context, user *User) error {
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func newTestService(t *testing.T) (*Service, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	tokens := NewTokenService(DefaultTokenConfig("test-secret", time.Hour))
	return NewService(repo, tokens), repo
}

func seedUser(t *testing.T, repo *memUserRepo, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &User{Username: username, PasswordHash: string(hash)}))
}

func TestAuthenticate_Success(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin123")

	session, err := svc.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	assert.Equal(t, "admin", session.Username)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthenticate_TrimsUsername(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin123")

	session, err := svc.Authenticate(context.Background(), "  admin  ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Username)
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	for _, creds := range [][2]string{
		{"", "admin123"},
		{"admin", ""},
		{"", ""},
		{"   ", "admin123"},
	} {
		_, err := svc.Authenticate(context.Background(), creds[0], creds[1])
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeMissingCredentials, appErr.Code)
	}
}

func TestAuthenticate_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin123")

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "admin123")
	_, wrongErr := svc.Authenticate(context.Background(), "admin", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	for _, err := range []error{unknownErr, wrongErr} {
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInvalidCredentials, appErr.Code)
		assert.True(t, apperror.IsInvalidCredentials(err))
	}
}

func TestAuthenticate_CaseSensitiveUsername(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin123")

	_, err := svc.Authenticate(context.Background(), "Admin", "admin123")
	assert.True(t, apperror.IsInvalidCredentials(err))
}

func TestEnsureDefaultUser(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultUser(ctx, "admin", "admin123"))

	user, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", user.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("admin123")))

	// created user can log in
	_, err = svc.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestEnsureDefaultUser_NeverOverwrites(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seedUser(t, repo, "admin", "custom-password")
	originalHash := repo.users["admin"].PasswordHash

	require.NoError(t, svc.EnsureDefaultUser(ctx, "admin", "admin123"))
	assert.Equal(t, originalHash, repo.users["admin"].PasswordHash)

	// the custom password still works, the default one does not
	_, err := svc.Authenticate(ctx, "admin", "custom-password")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "admin", "admin123")
	assert.True(t, apperror.IsInvalidCredentials(err))
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateValidate(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret", time.Hour))
	user := &User{ID: 42, Username: "admin"}

	token, expiresAt, err := svc.Generate(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userCtx, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userCtx.UserID)
	assert.Equal(t, "admin", userCtx.Username)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(DefaultTokenConfig("secret-a", time.Hour))
	verifier := NewTokenService(DefaultTokenConfig("secret-b", time.Hour))

	token, _, err := issuer.Generate(&User{ID: 1, Username: "admin"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret", time.Hour))

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "valora", TTL: -time.Minute})

	token, _, err := svc.Generate(&User{ID: 1, Username: "admin"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

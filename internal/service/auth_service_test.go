package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func TestAuthService_SignUpThenLogin(t *testing.T) {
	users := newFakeUsers()
	auth := NewAuthService(users, testSigningKey)
	ctx := context.Background()

	signedUp, err := auth.SignUp(ctx, "alice@example.com", "s3cret", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, signedUp.Token)
	require.Equal(t, "alice@example.com", signedUp.User.Email)
	require.NotEqual(t, "s3cret", signedUp.User.PasswordHash, "raw password must never be stored")

	// the issued token decodes back to the new user's id
	id, err := auth.ParseToken(signedUp.Token)
	require.NoError(t, err)
	require.Equal(t, signedUp.User.ID, id)

	// same credentials log in afterwards and bind the same identity
	loggedIn, err := auth.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	id, err = auth.ParseToken(loggedIn.Token)
	require.NoError(t, err)
	require.Equal(t, signedUp.User.ID, id)
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	auth := NewAuthService(users, testSigningKey)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "alice@example.com", "s3cret", "Alice")
	require.NoError(t, err)

	_, err = auth.SignUp(ctx, "alice@example.com", "other", "Impostor")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// the failed signup created nothing; original credentials still work
	_, err = auth.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
}

func TestAuthService_SignUpEmptyPassword(t *testing.T) {
	auth := NewAuthService(newFakeUsers(), testSigningKey)

	_, err := auth.SignUp(context.Background(), "alice@example.com", "   ", "Alice")
	require.Error(t, err)
}

func TestAuthService_LoginFailures(t *testing.T) {
	users := newFakeUsers()
	auth := NewAuthService(users, testSigningKey)
	ctx := context.Background()

	_, err := auth.SignUp(ctx, "alice@example.com", "s3cret", "Alice")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody@example.com", "s3cret")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "alice@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestAuthService_ParseToken(t *testing.T) {
	users := newFakeUsers()
	auth := NewAuthService(users, testSigningKey)
	ctx := context.Background()

	payload, err := auth.SignUp(ctx, "alice@example.com", "s3cret", "Alice")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.ParseToken("not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewAuthService(users, "a-different-key")
		_, err := other.ParseToken(payload.Token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token has no expiry", func(t *testing.T) {
		claims := &Claims{}
		_, err := jwt.ParseWithClaims(payload.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSigningKey), nil
		})
		require.NoError(t, err)
		require.Nil(t, claims.ExpiresAt, "identity tokens are issued without an expiry")
	})
}

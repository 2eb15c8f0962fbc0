package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-thats-long-enough-for-tests"

func TestNewJWTServiceEmptySecret(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService("")
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID, ScopeField, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, ScopeField, claims.Scope)
	assert.True(t, claims.HasFieldScope())
	assert.Equal(t, userID.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), uuid.New(), ScopeUser, -time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTService("issuer-secret-that-is-not-the-right-one")
	require.NoError(t, err)
	validator, err := NewJWTService(testSecret)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(context.Background(), uuid.New(), ScopeUser, time.Hour)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		claims, err := svc.ValidateToken(context.Background(), token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidateTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	// alg=none token with an otherwise plausible payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &tokenClaims{
		UserID: uuid.New().String(),
		Scope:  ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenDefaultsScopeToUser(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), userID, "", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, ScopeUser, claims.Scope)
	assert.False(t, claims.HasFieldScope())
}

func TestValidateTokenRejectsNonUUIDSubject(t *testing.T) {
	t.Parallel()

	svc, err := NewJWTService(testSecret)
	require.NoError(t, err)

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		UserID: "not-a-uuid",
		Scope:  ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

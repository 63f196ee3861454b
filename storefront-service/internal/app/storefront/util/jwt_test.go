package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateSessionToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 24*time.Hour)

	// Act
	token, err := jwtManager.GenerateSessionToken("session-1", "42")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Subject)
	assert.Equal(t, "42", claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTManager_GenerateSessionToken_NoExpiry(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", 0)

	token, err := jwtManager.GenerateSessionToken("session-2", "7")
	require.NoError(t, err)

	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTManager_ValidateToken_InvalidToken(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	claims, err := jwtManager.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.GenerateSessionToken("session-3", "1")
	require.NoError(t, err)

	claims, err := verifier.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	issued := time.Now().Add(-2 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
			Subject:   "session-4",
		},
	})
	signed, err := token.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	claims, err := jwtManager.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_WrongAlgorithm(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "session-5"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := jwtManager.ValidateToken(signed)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_MissingSubject(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	token, err := jwtManager.GenerateSessionToken("", "1")
	require.NoError(t, err)

	claims, err := jwtManager.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

package jwtutil

import (
	"testing"
	"time"

	"partner-portal/pkg/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationDays: 7})

	token, err := GenerateToken(42, "partner", "jane@acme.example")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "partner", claims.UserType)
	assert.Equal(t, "jane@acme.example", claims.Email)

	// Expiry lands 7 days after issuance.
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, 7*24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestValidateExpiredToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationDays: 7})

	now := time.Now()
	claims := UserClaims{
		UserID:   1,
		UserType: "admin",
		Email:    "admin@bztradewave.au",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTamperedToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationDays: 7})

	token, err := GenerateToken(42, "partner", "jane@acme.example")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSigningKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "other-key", ExpirationDays: 7})
	token, err := GenerateToken(42, "partner", "jane@acme.example")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationDays: 7})
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationDays: 7})

	_, err := ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func newTestGenerator(t *testing.T, expiry time.Duration) *JWTGenerator {
	t.Helper()

	gen, err := NewJWTGenerator(JWTGeneratorConfig{
		SecretKey:  testSecret,
		Issuer:     "crcl-test",
		ExpiryTime: expiry,
	})
	require.NoError(t, err)
	return gen
}

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()

	v, err := NewJWTValidator(JWTConfig{
		SecretKey: testSecret,
		Issuer:    "crcl-test",
	})
	require.NoError(t, err)
	return v
}

func TestJWTValidator_ValidateToken_RoundTrip(t *testing.T) {
	gen := newTestGenerator(t, time.Hour)
	validator := newTestValidator(t)

	token, err := gen.GenerateToken("user-123", "alice@example.com", nil)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"authenticated"}, claims.Roles)
}

func TestJWTValidator_ValidateToken_ExpiredToken(t *testing.T) {
	gen := newTestGenerator(t, -time.Minute)
	validator := newTestValidator(t)

	token, err := gen.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_ValidateToken_WrongSecret(t *testing.T) {
	gen, err := NewJWTGenerator(JWTGeneratorConfig{SecretKey: "a-different-secret", Issuer: "crcl-test"})
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := gen.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTValidator_ValidateToken_WrongIssuer(t *testing.T) {
	gen, err := NewJWTGenerator(JWTGeneratorConfig{SecretKey: testSecret, Issuer: "someone-else"})
	require.NoError(t, err)
	validator := newTestValidator(t)

	token, err := gen.GenerateToken("user-123", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_ValidateToken_Garbage(t *testing.T) {
	validator := newTestValidator(t)

	_, err := validator.ValidateToken("not.a.token")

	assert.Error(t, err)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestNewJWTValidator_RejectsUnsupportedMethod(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SecretKey: testSecret, SigningMethod: "RS256"})
	assert.Error(t, err)
}

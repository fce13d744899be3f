package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavoir_back_end/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	user := &models.User{ID: "u-42", Email: "jean@example.be", Role: models.RoleVip}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims["user_id"])
	assert.Equal(t, "jean@example.be", claims["email"])
	assert.Equal(t, models.RoleVip, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, exp, float64(time.Now().Unix()))
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, err := GenerateJWT(&models.User{ID: "u-1"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "un-autre-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	claims := jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-de-test"))
	require.NoError(t, err)

	_, err = ParseJWT(expired)
	assert.Error(t, err)
}

func TestParseJWTRejectsNoneAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "u-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseJWT(unsigned)
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64, "32 octets en hexadécimal")

	other, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais mot de passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("azerty123")
	require.NoError(t, err)
	h2, err := HashPassword("azerty123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "sel aléatoire à chaque appel")
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("peu importe", "pas-un-hash")
	assert.Error(t, err)
}

func TestIsArgon2Hash(t *testing.T) {
	assert.False(t, IsArgon2Hash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsArgon2Hash(""))
}

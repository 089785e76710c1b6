package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "wrongpass"))
	assert.False(t, VerifyPassword("not-a-hash", "secret123"))
}

func TestHashPasswordDiffersPerCall(t *testing.T) {
	// bcrypt salts every hash; two hashes of the same input differ.
	h1, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	h2, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

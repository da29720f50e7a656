package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube_backend/internal/utils"
)

func TestHashPassword_VerifiesRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, utils.CheckPasswordHash("secret1", hash))
}

func TestCheckPasswordHash_RejectsWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, utils.CheckPasswordHash("secret2", hash))
	assert.False(t, utils.CheckPasswordHash("", hash))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	first, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	second, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	// Same plaintext, different salt, different hash; both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, utils.CheckPasswordHash("secret1", first))
	assert.True(t, utils.CheckPasswordHash("secret1", second))
}

func TestCheckPasswordHash_RejectsDoubleHash(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	// Hashing an already-hashed value produces a credential nobody holds.
	rehashed, err := utils.HashPassword(hash)
	require.NoError(t, err)
	assert.False(t, utils.CheckPasswordHash("secret1", rehashed))
}

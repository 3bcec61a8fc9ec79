package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "hunter22"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// A cost beyond bcrypt's range would normally error out; a bad
	// BCRYPT_COST must not break registration.
	hash, err := HashPassword("hunter22", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter22"))
}

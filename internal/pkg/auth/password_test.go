package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("changeme123")
	require.NoError(t, err)

	assert.NotEqual(t, "changeme123", hash, "password must not be stored in plaintext")
	assert.True(t, CheckPassword(hash, "changeme123"))
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "battery-staple"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword(hash, "correct-horse "))
}

func TestCheckPasswordRejectsGarbageHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}

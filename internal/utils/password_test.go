package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash, "hash should not equal the plaintext")

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
	assert.False(t, CheckPasswordHash(password, "not-a-bcrypt-hash"))
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	// bcrypt salts every hash, so two hashes of the same input differ.
	first, err := HashPassword("same input")
	assert.NoError(t, err)
	second, err := HashPassword("same input")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

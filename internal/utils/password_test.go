package utils_test

import (
	"testing"

	"github.com/skywalker/milestone_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("s3cret-password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))
	assert.False(t, utils.CheckPasswordHash("s3cret-password", "not-a-bcrypt-hash"))
}

func TestGenerateSecureRandomString(t *testing.T) {
	s1, err := utils.GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s1, 32) // hex encoding doubles the length

	s2, err := utils.GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}

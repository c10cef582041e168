package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotEqual(t, "correct horse battery staple", h)

	assert.True(t, CheckPassword(h, "correct horse battery staple"))
	assert.False(t, CheckPassword(h, "wrong password"))
}

func TestHashPassword_SaltVaries(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password")
	require.NoError(t, err)
	h2, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "password"))
	assert.True(t, CheckPassword(h2, "password"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-hash", "password"))
	assert.False(t, CheckPassword("", "password"))
}

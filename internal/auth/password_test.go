package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPasswordAndMatch(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("correct horse battery staple"))
	require.NotEmpty(t, user.Password)
	assert.NotContains(t, string(user.Password), "correct horse")

	match, err := user.IsPasswordMatch("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestPasswordMismatch(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("pw1-something"))

	match, err := user.IsPasswordMatch("wrong")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHashIsSalted(t *testing.T) {
	first := &User{}
	second := &User{}
	require.NoError(t, first.SetPassword("same-password"))
	require.NoError(t, second.SetPassword("same-password"))

	assert.NotEqual(t, first.Password, second.Password)
}

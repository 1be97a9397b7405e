package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid())

	v.Check(true, "field", "must be valid")
	assert.True(t, v.IsValid())

	v.Check(false, "field", "must be valid")
	assert.False(t, v.IsValid())
	assert.Equal(t, "must be valid", v.Errors["field"])

	// The first message for a key wins.
	v.Check(false, "field", "another message")
	assert.Equal(t, "must be valid", v.Errors["field"])
}

func TestCheckNotBlank(t *testing.T) {
	v := New()
	v.CheckNotBlank("value", "ok", "must be provided")
	v.CheckNotBlank("   ", "blank", "must be provided")
	v.CheckNotBlank("", "empty", "must be provided")

	assert.NotContains(t, v.Errors, "ok")
	assert.Contains(t, v.Errors, "blank")
	assert.Contains(t, v.Errors, "empty")
}

func TestCheckEmail(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+c@sub.example.org"}
	invalid := []string{"", "alice", "alice@", "@example.com", "a b@example.com"}

	for _, email := range valid {
		v := New()
		v.CheckEmail(email, "must be a valid email address")
		assert.True(t, v.IsValid(), "email %q", email)
	}
	for _, email := range invalid {
		v := New()
		v.CheckEmail(email, "must be a valid email address")
		assert.False(t, v.IsValid(), "email %q", email)
	}
}

func TestIsUnique(t *testing.T) {
	v := New()
	assert.True(t, v.IsUnique([]string{"a", "b", "c"}))
	assert.False(t, v.IsUnique([]string{"a", "b", "a"}))
}

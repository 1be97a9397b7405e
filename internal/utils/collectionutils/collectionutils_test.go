package collectionutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssociate(t *testing.T) {
	type user struct {
		id   int64
		name string
	}

	users := []user{{1, "alice"}, {2, "bob"}}
	byID := Associate(users, func(u user) (int64, string) { return u.id, u.name })

	assert.Equal(t, map[int64]string{1: "alice", 2: "bob"}, byID)
}

func TestGetOrDefault(t *testing.T) {
	m := map[string]int{"a": 1}
	assert.Equal(t, 1, GetOrDefault(m, "a", 0))
	assert.Equal(t, 42, GetOrDefault(m, "b", 42))
}

func TestDeduplicate(t *testing.T) {
	assert.Equal(t, []string{"rust", "web"}, Deduplicate([]string{"rust", "web", "rust"}))
	assert.Empty(t, Deduplicate([]string{}))
}

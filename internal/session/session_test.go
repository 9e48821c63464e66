package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()

	assert.False(t, s.Active())
	_, ok := s.Current()
	assert.False(t, ok)

	s.Bind("alex")
	current, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "alex", current)

	// binding again replaces the active user
	s.Bind("sam")
	current, _ = s.Current()
	assert.Equal(t, "sam", current)

	s.Clear()
	assert.False(t, s.Active())

	// clearing an empty session is fine
	s.Clear()
	assert.False(t, s.Active())
}

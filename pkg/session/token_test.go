package session_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/orgtarefas/planner/pkg/session"
)

func TestNewToken(t *testing.T) {
	token, err := session.NewToken()

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "session_"))
	assert.Equal(t, 3, len(strings.SplitN(token, "_", 3)))
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		token, err := session.NewToken()
		assert.NoError(t, err)
		assert.False(t, seen[token], "duplicate token: %s", token)
		seen[token] = true
	}
}

package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/orgtarefas/planner/pkg/session"
)

func testSession() *session.LocalSession {
	return &session.LocalSession{
		UserID:      "u1",
		Identifier:  "alice",
		DisplayName: "Alice",
		Role:        "user",
		Token:       "session_1_abc",
		Expiry:      time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
}

func runCacheTests(t *testing.T, cache session.Cache) {
	empty, err := cache.Read()
	assert.NoError(t, err)
	assert.Nil(t, empty)

	// clearing an empty cache is not an error
	assert.NoError(t, cache.Clear())

	want := testSession()
	assert.NoError(t, cache.Write(want))

	got, err := cache.Read()
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Identifier, got.Identifier)
	assert.Equal(t, want.Token, got.Token)
	assert.True(t, want.Expiry.Equal(got.Expiry))

	// overwrite keeps a single session
	want.Token = "session_2_def"
	assert.NoError(t, cache.Write(want))
	got, err = cache.Read()
	assert.NoError(t, err)
	assert.Equal(t, "session_2_def", got.Token)

	assert.NoError(t, cache.Clear())
	got, err = cache.Read()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache(t *testing.T) {
	runCacheTests(t, session.NewMemoryCache())
}

func TestSQLiteCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	cache, err := session.NewSQLiteCache(path)
	assert.NoError(t, err)
	defer cache.Close()

	runCacheTests(t, cache)
}

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	cache, err := session.NewSQLiteCache(path)
	assert.NoError(t, err)
	assert.NoError(t, cache.Write(testSession()))
	assert.NoError(t, cache.Close())

	reopened, err := session.NewSQLiteCache(path)
	assert.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Read()
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "alice", got.Identifier)
}

package account_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/orgtarefas/planner/pkg/account"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE users (
		id TEXT PRIMARY KEY,
		identifier TEXT NOT NULL UNIQUE,
		secret TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		session_token TEXT NULL,
		session_expiry TIMESTAMP NULL,
		last_login TIMESTAMP NULL,
		last_logout TIMESTAMP NULL
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestMySQLRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := account.NewMySQLRepo(setupTestDB(t))

	acct := &account.UserAccount{
		Identifier:  "Alice",
		Secret:      "hashed_pass",
		DisplayName: "Alice Santos",
		Role:        account.RoleUser,
		Active:      true,
	}
	assert.NoError(t, repo.Create(ctx, acct))
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "alice", acct.Identifier, "identifier stored lowercased")

	// duplicate identifier
	err := repo.Create(ctx, &account.UserAccount{Identifier: "alice", Secret: "x"})
	assert.Error(t, err)

	// lookup is case-insensitive
	found, err := repo.FindByIdentifier(ctx, "  ALICE ")
	assert.NoError(t, err)
	assert.Equal(t, acct.ID, found.ID)
	assert.Nil(t, found.SessionToken)
	assert.Nil(t, found.SessionExpiry)

	_, err = repo.FindByIdentifier(ctx, "ghost")
	assert.ErrorIs(t, err, account.ErrNotFound)

	got, err := repo.GetByID(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Identifier)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestMySQLRepo_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := account.NewMySQLRepo(setupTestDB(t))

	acct := &account.UserAccount{Identifier: "bob", Secret: "hash", Active: true}
	assert.NoError(t, repo.Create(ctx, acct))

	now := time.Now().UTC().Truncate(time.Second)
	expiry := now.Add(30 * 24 * time.Hour)

	assert.NoError(t, repo.UpdateSession(ctx, acct.ID, "session_1_tok", expiry, now))

	got, err := repo.GetByID(ctx, acct.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got.SessionToken)
	assert.Equal(t, "session_1_tok", *got.SessionToken)
	assert.NotNil(t, got.SessionExpiry)
	assert.True(t, expiry.Equal(got.SessionExpiry.UTC()))
	assert.NotNil(t, got.LastLogin)

	// fencing: a second login overwrites the token
	assert.NoError(t, repo.UpdateSession(ctx, acct.ID, "session_2_tok", expiry, now))
	got, err = repo.GetByID(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Equal(t, "session_2_tok", *got.SessionToken)

	assert.ErrorIs(t, repo.UpdateSession(ctx, "missing", "t", expiry, now), account.ErrNotFound)

	assert.NoError(t, repo.ClearSession(ctx, acct.ID, now))
	got, err = repo.GetByID(ctx, acct.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.SessionToken)
	assert.Nil(t, got.SessionExpiry)
	assert.NotNil(t, got.LastLogout)

	// clearing twice is a no-op, not an error
	assert.NoError(t, repo.ClearSession(ctx, acct.ID, now))
}

func TestMySQLRepo_List(t *testing.T) {
	ctx := context.Background()
	repo := account.NewMySQLRepo(setupTestDB(t))

	assert.NoError(t, repo.Create(ctx, &account.UserAccount{Identifier: "carol", Secret: "h", Active: true}))
	assert.NoError(t, repo.Create(ctx, &account.UserAccount{Identifier: "bob", Secret: "h", Active: true}))
	assert.NoError(t, repo.Create(ctx, &account.UserAccount{Identifier: "mallory", Secret: "h", Active: false}))

	accounts, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(accounts))
	assert.Equal(t, "bob", accounts[0].Identifier)
	assert.Equal(t, "carol", accounts[1].Identifier)
}

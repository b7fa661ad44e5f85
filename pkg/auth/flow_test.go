package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/auth"
	"github.com/orgtarefas/planner/pkg/session"
)

// memoryDirectory is a map-backed credential store for exercising the
// login/validate lifecycle without a database.
type memoryDirectory struct {
	mu       sync.Mutex
	accounts map[string]*account.UserAccount
}

func newMemoryDirectory(accounts ...*account.UserAccount) *memoryDirectory {
	d := &memoryDirectory{accounts: map[string]*account.UserAccount{}}
	for _, a := range accounts {
		d.accounts[a.ID] = a
	}
	return d
}

func (d *memoryDirectory) FindByIdentifier(_ context.Context, identifier string) (*account.UserAccount, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	identifier = account.NormalizeIdentifier(identifier)
	for _, a := range d.accounts {
		if a.Identifier == identifier {
			copied := *a
			return &copied, nil
		}
	}
	return nil, account.ErrNotFound
}

func (d *memoryDirectory) GetByID(_ context.Context, id string) (*account.UserAccount, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (d *memoryDirectory) UpdateSession(_ context.Context, id, token string, expiry, lastLogin time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return account.ErrNotFound
	}
	a.SessionToken = &token
	a.SessionExpiry = &expiry
	a.LastLogin = &lastLogin
	return nil
}

func (d *memoryDirectory) ClearSession(_ context.Context, id string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.accounts[id]
	if !ok {
		return nil
	}
	a.SessionToken = nil
	a.SessionExpiry = nil
	a.LastLogout = &at
	return nil
}

// TestTwoDeviceFencing walks the full lifecycle across two caches
// sharing one credential store: the second login fences out the first,
// and the fenced device's rejection revokes the server-side session.
func TestTwoDeviceFencing(t *testing.T) {
	ctx := context.Background()
	store := newMemoryDirectory(aliceAccount(t))

	cacheA := session.NewMemoryCache()
	cacheB := session.NewMemoryCache()

	svcA := auth.NewService(store, cacheA, testLogger())
	svcB := auth.NewService(store, cacheB, testLogger())
	valA := auth.NewValidator(store, cacheA, testLogger())
	valB := auth.NewValidator(store, cacheB, testLogger())

	// device A logs in and validates cleanly
	sessA, err := svcA.Authenticate(ctx, "alice", "pw1")
	assert.NoError(t, err)
	assert.True(t, valA.Validate(ctx).Valid)

	// device B logs in; the store token now belongs to B
	sessB, err := svcB.Authenticate(ctx, "alice", "pw1")
	assert.NoError(t, err)
	assert.NotEqual(t, sessA.Token, sessB.Token)
	assert.True(t, valB.Validate(ctx).Valid)

	// device A is fenced out and its cache dropped
	verdict := valA.Validate(ctx)
	assert.False(t, verdict.Valid)
	assert.Equal(t, auth.ReasonSupersededElsewhere, verdict.Reason)
	assert.Equal(t, "account was accessed on another device", verdict.Message)

	got, err := cacheA.Read()
	assert.NoError(t, err)
	assert.Nil(t, got)

	// A's rejection also revoked the server-side session, so B's
	// token no longer matches either
	acct, err := store.GetByID(ctx, sessA.UserID)
	assert.NoError(t, err)
	assert.Nil(t, acct.SessionToken)

	verdict = valB.Validate(ctx)
	assert.False(t, verdict.Valid)
	assert.Equal(t, auth.ReasonSupersededElsewhere, verdict.Reason)
}

// TestLogoutThenValidate covers the logout path end to end: the next
// validation on the same device reports not-logged-in, and a peeked
// stale snapshot from before the logout is rejected.
func TestLogoutThenValidate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryDirectory(aliceAccount(t))

	cache := session.NewMemoryCache()
	svc := auth.NewService(store, cache, testLogger())
	val := auth.NewValidator(store, cache, testLogger())

	sess, err := svc.Authenticate(ctx, "alice", "pw1")
	assert.NoError(t, err)
	assert.True(t, val.Validate(ctx).Valid)

	assert.NoError(t, svc.Logout(ctx))

	verdict := val.Validate(ctx)
	assert.False(t, verdict.Valid)
	assert.Equal(t, auth.ReasonNotLoggedIn, verdict.Reason)

	// a snapshot captured before the logout is no longer authoritative
	verdict = val.Check(ctx, sess)
	assert.False(t, verdict.Valid)
	assert.Equal(t, auth.ReasonSupersededElsewhere, verdict.Reason)
}

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/session"
)

// Verdict is the terminal state of one validation pass.
type Verdict struct {
	Valid   bool                  `json:"valid"`
	Reason  Reason                `json:"reason,omitempty"`
	Message string                `json:"message,omitempty"`
	Session *session.LocalSession `json:"session,omitempty"`
}

func invalid(reason Reason) Verdict {
	return Verdict{Reason: reason, Message: reason.Message()}
}

// Validator reconciles a local session snapshot with the credential
// store's current record and decides whether the session is still
// authoritative.
type Validator struct {
	Accounts account.Repository
	Cache    session.Cache // nil for the stateless Check path

	// ExtendOnValidate pushes the expiry forward on every successful
	// validation instead of leaving the login-time deadline in place.
	ExtendOnValidate bool
	Lifetime         time.Duration

	Logger *slog.Logger
	Now    func() time.Time

	group singleflight.Group
}

func NewValidator(accounts account.Repository, cache session.Cache, logger *slog.Logger) *Validator {
	return &Validator{
		Accounts: accounts,
		Cache:    cache,
		Lifetime: DefaultLifetime,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Validate runs the page-load state machine against the cached session.
// On a session-domain rejection it clears the cache and, when the
// account still exists, its server-side session fields, so the stale
// token cannot be replayed. A network failure fails closed but keeps
// the cache, since the store error is retryable.
func (v *Validator) Validate(ctx context.Context) Verdict {
	if v.Cache == nil {
		return invalid(ReasonNotLoggedIn)
	}

	sess, err := v.Cache.Read()
	if err != nil {
		v.Logger.Error("session cache read", "error", err)
		return invalid(ReasonNotLoggedIn)
	}
	if sess == nil {
		return invalid(ReasonNotLoggedIn)
	}

	verdict, acct := v.reconcile(ctx, sess)
	if verdict.Valid {
		if v.ExtendOnValidate {
			v.extend(ctx, sess)
		}
		return verdict
	}

	switch verdict.Reason {
	case ReasonNetworkError:
		return verdict
	}

	if err := v.Cache.Clear(); err != nil {
		v.Logger.Error("session cache clear", "error", err)
	}
	if acct != nil {
		if err := v.Accounts.ClearSession(ctx, acct.ID, v.Now()); err != nil {
			v.Logger.Error("session revoke", "error", err, "user", acct.ID)
		}
	}

	return verdict
}

// Check is the cache-free reconcile used by the HTTP middleware, which
// carries the snapshot in the request instead of a local cache. It has
// no side effects on the store.
func (v *Validator) Check(ctx context.Context, sess *session.LocalSession) Verdict {
	if sess == nil {
		return invalid(ReasonNotLoggedIn)
	}
	verdict, _ := v.reconcile(ctx, sess)
	return verdict
}

type reconciled struct {
	verdict Verdict
	acct    *account.UserAccount
}

// reconcile fetches the account and applies the rejection checks in
// order: deleted, deactivated, superseded, expired. The local expiry
// copy is checked before the fetch, so an expired session is reported
// as expired no matter what happened to the account since.
// Overlapping passes for the same token are coalesced into one fetch.
func (v *Validator) reconcile(ctx context.Context, sess *session.LocalSession) (Verdict, *account.UserAccount) {
	if sess.ExpiredAt(v.Now()) {
		return invalid(ReasonExpired), nil
	}

	result, err, _ := v.group.Do(sess.Token, func() (any, error) {
		return v.fetchAndCheck(ctx, sess), nil
	})
	if err != nil {
		return invalid(ReasonNetworkError), nil
	}

	r := result.(reconciled)
	return r.verdict, r.acct
}

func (v *Validator) fetchAndCheck(ctx context.Context, sess *session.LocalSession) reconciled {
	acct, err := v.Accounts.GetByID(ctx, sess.UserID)
	if errors.Is(err, account.ErrNotFound) {
		return reconciled{verdict: invalid(ReasonAccountDeleted)}
	}
	if err != nil {
		v.Logger.Error("session validation", "error", err, "user", sess.UserID)
		return reconciled{verdict: invalid(ReasonNetworkError)}
	}

	if !acct.Active {
		return reconciled{verdict: invalid(ReasonAccountDeactivated), acct: acct}
	}
	if acct.SessionToken == nil || *acct.SessionToken != sess.Token {
		return reconciled{verdict: invalid(ReasonSupersededElsewhere), acct: acct}
	}
	if acct.SessionExpiry == nil || !v.Now().Before(*acct.SessionExpiry) {
		return reconciled{verdict: invalid(ReasonExpired), acct: acct}
	}

	return reconciled{verdict: Verdict{Valid: true, Session: sess}, acct: acct}
}

// extend refreshes lastLogin and pushes the expiry forward, mirroring
// the cache so the local copy stays a usable pre-check.
func (v *Validator) extend(ctx context.Context, sess *session.LocalSession) {
	now := v.Now()
	sess.Expiry = now.Add(v.Lifetime)

	if err := v.Accounts.UpdateSession(ctx, sess.UserID, sess.Token, sess.Expiry, now); err != nil {
		v.Logger.Error("session extend", "error", err, "user", sess.UserID)
		return
	}
	if err := v.Cache.Write(sess); err != nil {
		v.Logger.Error("session cache write", "error", err)
	}
}

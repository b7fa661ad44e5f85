package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/session"
)

// DefaultLifetime is how long an issued session stays valid.
const DefaultLifetime = 30 * 24 * time.Hour

type ServiceInterface interface {
	Authenticate(ctx context.Context, identifier, secret string) (*session.LocalSession, error)
	Revoke(ctx context.Context, userID string) error
}

// Service is the authenticator: it validates submitted credentials
// against the credential store and establishes the account's single
// authoritative session.
type Service struct {
	Accounts account.Repository
	Cache    session.Cache // nil when the caller carries the session itself
	Lifetime time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewService(accounts account.Repository, cache session.Cache, logger *slog.Logger) *Service {
	return &Service{
		Accounts: accounts,
		Cache:    cache,
		Lifetime: DefaultLifetime,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Authenticate checks identifier+secret and, on success, writes a fresh
// session token to the account. The store write is the commit point:
// the local cache is only touched after it succeeds. Two concurrent
// logins race last-write-wins on the token; the loser is fenced out on
// its next validation.
func (s *Service) Authenticate(ctx context.Context, identifier, secret string) (*session.LocalSession, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.TrimSpace(secret) == "" {
		return nil, ErrEmptyFields
	}

	acct, err := s.Accounts.FindByIdentifier(ctx, identifier)
	if errors.Is(err, account.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("credential store lookup: %w", err)
	}

	if !acct.Active {
		return nil, ErrAccountInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(acct.Secret), []byte(secret)) != nil {
		return nil, ErrInvalidCredential
	}

	token, err := session.NewToken()
	if err != nil {
		return nil, fmt.Errorf("token generation: %w", err)
	}

	now := s.Now()
	expiry := now.Add(s.Lifetime)

	if err := s.Accounts.UpdateSession(ctx, acct.ID, token, expiry, now); err != nil {
		return nil, fmt.Errorf("session commit: %w", err)
	}

	sess := &session.LocalSession{
		UserID:      acct.ID,
		Identifier:  acct.Identifier,
		DisplayName: acct.DisplayName,
		Role:        acct.Role,
		Token:       token,
		Expiry:      expiry,
	}
	if sess.DisplayName == "" {
		sess.DisplayName = acct.Identifier
	}

	if s.Cache != nil {
		if err := s.Cache.Write(sess); err != nil {
			return nil, fmt.Errorf("session cache: %w", err)
		}
	}

	return sess, nil
}

// Logout ends the cached session. Idempotent: the server-side clear is
// best-effort and never blocks dropping the local cache.
func (s *Service) Logout(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}

	sess, err := s.Cache.Read()
	if err != nil {
		s.Logger.Error("logout", "error", err)
	}
	if sess != nil {
		if err := s.Revoke(ctx, sess.UserID); err != nil {
			s.Logger.Error("logout", "error", err, "user", sess.UserID)
		}
	}

	return s.Cache.Clear()
}

// Revoke clears the account's server-side session fields.
func (s *Service) Revoke(ctx context.Context, userID string) error {
	err := s.Accounts.ClearSession(ctx, userID, s.Now())
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return err
	}
	return nil
}

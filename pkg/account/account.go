package account

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrNotFound = errors.New("account not found")

// UserAccount is a credential-store document. SessionToken is the
// single authoritative session for the account: a login on another
// device overwrites it and fences out every older session.
type UserAccount struct {
	ID            string     `bson:"_id" json:"id"`
	Identifier    string     `bson:"identifier" json:"username"`
	Secret        string     `bson:"secret" json:"-"`
	DisplayName   string     `bson:"displayName,omitempty" json:"displayName,omitempty"`
	Role          string     `bson:"role" json:"role"`
	Active        bool       `bson:"active" json:"active"`
	SessionToken  *string    `bson:"sessionToken,omitempty" json:"-"`
	SessionExpiry *time.Time `bson:"sessionExpiry,omitempty" json:"-"`
	LastLogin     *time.Time `bson:"lastLogin,omitempty" json:"-"`
	LastLogout    *time.Time `bson:"lastLogout,omitempty" json:"-"`
}

// NormalizeIdentifier lowercases login names; lookups are
// case-insensitive.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Repository is the narrow credential-store surface the session core
// consumes. Only the session fields are ever written through it.
type Repository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*UserAccount, error)
	GetByID(ctx context.Context, id string) (*UserAccount, error)
	UpdateSession(ctx context.Context, id, token string, expiry, lastLogin time.Time) error
	ClearSession(ctx context.Context, id string, at time.Time) error
}

// Directory adds the operations the application shell needs on top of
// the session core's Repository.
type Directory interface {
	Repository
	Create(ctx context.Context, acct *UserAccount) error
	List(ctx context.Context) ([]*UserAccount, error)
}

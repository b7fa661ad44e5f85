package session

import "time"

// CacheKey is the fixed key the local cache stores the session under.
const CacheKey = "usuarioLogado"

// LocalSession is the client-held snapshot of an authenticated account.
// Token must match the account's server-side session token for the
// session to remain authoritative; Expiry is only a fast local copy,
// the server-side value always wins.
type LocalSession struct {
	UserID      string    `json:"userId"`
	Identifier  string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	Token       string    `json:"sessionToken"`
	Expiry      time.Time `json:"sessionExpiry"`
}

func (s *LocalSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.Expiry)
}

// Cache is durable client-side storage for the last established session.
// Read returns (nil, nil) when no session is stored.
type Cache interface {
	Read() (*LocalSession, error)
	Write(s *LocalSession) error
	Clear() error
}

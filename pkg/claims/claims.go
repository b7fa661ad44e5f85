package claims

import (
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/orgtarefas/planner/pkg/session"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Claims carry the LocalSession snapshot inside the bearer token; the
// embedded session token is what gets fenced against the account's
// server-side record on every request.
type Claims struct {
	User struct {
		Username    string `json:"username"`
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
	SessionToken string `json:"sessionToken"`
	jwt.StandardClaims
}

func New(sess *session.LocalSession) *Claims {
	c := &Claims{SessionToken: sess.Token}
	c.User.Username = sess.Identifier
	c.User.ID = sess.UserID
	c.User.DisplayName = sess.DisplayName
	c.User.Role = sess.Role
	c.IssuedAt = time.Now().UTC().Unix()
	c.ExpiresAt = sess.Expiry.UTC().Unix()
	return c
}

// LocalSession rebuilds the snapshot the token was minted from.
func (c *Claims) LocalSession() *session.LocalSession {
	return &session.LocalSession{
		UserID:      c.User.ID,
		Identifier:  c.User.Username,
		DisplayName: c.User.DisplayName,
		Role:        c.User.Role,
		Token:       c.SessionToken,
		Expiry:      time.Unix(c.ExpiresAt, 0),
	}
}

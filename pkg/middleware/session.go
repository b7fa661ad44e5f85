package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"

	"github.com/orgtarefas/planner/pkg/auth"
	"github.com/orgtarefas/planner/pkg/claims"
	"github.com/orgtarefas/planner/pkg/session"
)

var (
	noSessUrls = map[string]string{
		"/api/login":   http.MethodPost,
		"/api/logout":  http.MethodPost,
		"/api/session": http.MethodGet,
	}
)

// SessionChecker reconciles a carried session snapshot with the
// credential store. Implemented by auth.Validator.
type SessionChecker interface {
	Check(ctx context.Context, sess *session.LocalSession) auth.Verdict
}

// CheckSession gates every route not listed in noSessUrls: the bearer
// token is parsed back into the session snapshot it carries, and the
// snapshot is validated against the account's current record.
func CheckSession(checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()
			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			parsed, reason := ParseBearer(r)
			if reason != auth.ReasonNone {
				WriteVerdict(w, auth.Verdict{Reason: reason, Message: reason.Message()})
				return
			}

			verdict := checker.Check(r.Context(), parsed.LocalSession())
			if !verdict.Valid {
				WriteVerdict(w, verdict)
				return
			}

			ctx := context.WithValue(r.Context(), claims.SessionContextKey, parsed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseBearer extracts and verifies the Authorization token, returning
// the claims it carries. The reason is ReasonNone on success,
// ReasonExpired when only the token's expiry failed (the JWT exp is the
// session expiry, so this is the fast local pre-check), and
// ReasonNotLoggedIn for anything missing, malformed or mis-signed.
func ParseBearer(r *http.Request) (*claims.Claims, auth.Reason) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, auth.ReasonNotLoggedIn
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	secretGetter := func(token *jwt.Token) (interface{}, error) {
		method, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != "HS256" {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	}

	parsed := &claims.Claims{}
	result, err := jwt.ParseWithClaims(token, parsed, secretGetter)
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors == jwt.ValidationErrorExpired {
			return nil, auth.ReasonExpired
		}
		return nil, auth.ReasonNotLoggedIn
	}
	if !result.Valid || parsed.User.ID == "" {
		return nil, auth.ReasonNotLoggedIn
	}
	return parsed, auth.ReasonNone
}

func WriteVerdict(w http.ResponseWriter, verdict auth.Verdict) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"reason":  verdict.Reason,
		"message": verdict.Message,
	})
}

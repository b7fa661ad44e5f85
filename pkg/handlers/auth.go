package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	jwt "github.com/dgrijalva/jwt-go"

	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/auth"
	"github.com/orgtarefas/planner/pkg/claims"
	"github.com/orgtarefas/planner/pkg/middleware"
	"github.com/orgtarefas/planner/pkg/session"
)

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Service  auth.ServiceInterface
	Checker  middleware.SessionChecker
	Accounts account.Directory
	Logger   *slog.Logger
}

func NewAuthHandler(service auth.ServiceInterface, checker middleware.SessionChecker, accounts account.Directory, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service:  service,
		Checker:  checker,
		Accounts: accounts,
		Logger:   logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	sess, err := h.Service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		status, msg := loginStatus(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("login", "error", err.Error())
		}
		if ok := WriteResp(w, h.Logger, map[string]any{"message": msg}, status); ok {
			h.Logger.Info("login rejected", "user", req.Username)
		}
		return
	}

	token, err := SignSession(sess)
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"token": token, "session": sess}, http.StatusOK); ok {
		h.Logger.Info("login", "user", sess.UserID)
	}
}

// Session reports whether the carried session is still authoritative.
// 200 with the snapshot when valid, 401 with the rejection reason and
// its must-acknowledge message otherwise.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	parsed, reason := middleware.ParseBearer(r)
	if reason != auth.ReasonNone {
		middleware.WriteVerdict(w, auth.Verdict{Reason: reason, Message: reason.Message()})
		return
	}

	verdict := h.Checker.Check(r.Context(), parsed.LocalSession())
	if !verdict.Valid {
		middleware.WriteVerdict(w, verdict)
		return
	}

	WriteResp(w, h.Logger, map[string]any{"session": verdict.Session}, http.StatusOK)
}

// Logout always succeeds; revoking the server-side session is
// best-effort so a store outage cannot keep a client logged in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if parsed, reason := middleware.ParseBearer(r); reason == auth.ReasonNone {
		if err := h.Service.Revoke(r.Context(), parsed.User.ID); err != nil {
			h.Logger.Error("logout", "error", err, "user", parsed.User.ID)
		}
	}

	WriteResp(w, h.Logger, map[string]any{"message": "logged out"}, http.StatusOK)
}

// Users lists active accounts for the assignee selects.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Accounts.List(r.Context())
	if err != nil {
		h.Logger.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "try again")
		return
	}
	writeJSON(w, h.Logger, accounts)
}

func loginStatus(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrEmptyFields):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrAccountNotFound), errors.Is(err, auth.ErrInvalidCredential):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrAccountInactive):
		return http.StatusForbidden, err.Error()
	}
	return http.StatusInternalServerError, "something went wrong, try again"
}

// SignSession mints the bearer token carrying the session snapshot;
// its exp claim is the session expiry itself.
func SignSession(sess *session.LocalSession) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims.New(sess))
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}

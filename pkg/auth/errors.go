package auth

import "errors"

// Authentication failures. All recoverable: the login form surfaces the
// message and the user tries again.
var (
	ErrEmptyFields       = errors.New("fill in both fields")
	ErrAccountNotFound   = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid password")
	ErrAccountInactive   = errors.New("access disabled, contact your administrator")
)

// Reason explains why a session was rejected. Session-domain reasons
// force a logout and must be shown until acknowledged, since they
// explain an involuntary session loss.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonNotLoggedIn         Reason = "not_logged_in"
	ReasonAccountDeleted      Reason = "account_deleted"
	ReasonAccountDeactivated  Reason = "account_deactivated"
	ReasonSupersededElsewhere Reason = "superseded_elsewhere"
	ReasonExpired             Reason = "expired"
	ReasonNetworkError        Reason = "network_error"
)

func (r Reason) Message() string {
	switch r {
	case ReasonNotLoggedIn:
		return "log in to continue"
	case ReasonAccountDeleted:
		return "account no longer exists"
	case ReasonAccountDeactivated:
		return "access disabled by administrator"
	case ReasonSupersededElsewhere:
		return "account was accessed on another device"
	case ReasonExpired:
		return "session expired, log in again"
	case ReasonNetworkError:
		return "could not reach the server, try again"
	}
	return ""
}

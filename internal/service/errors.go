package service

import (
	"errors"
	"strings"
)

// FailureKind classifies every failure the auth flows can produce.
type FailureKind int

const (
	KindUnknown FailureKind = iota
	// KindValidation is one or more user-correctable field rule violations.
	KindValidation
	// KindConflict means the email or username is already taken.
	KindConflict
	// KindCredential is a login mismatch; it never says which part was wrong.
	KindCredential
	// KindStore is a persistence failure.
	KindStore
	// KindSession is a failure to save or destroy the session.
	KindSession
)

func (k FailureKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindCredential:
		return "credential"
	case KindStore:
		return "store"
	case KindSession:
		return "session"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgUsernameRequired = "Username is required"
	MsgInvalidEmail     = "Please enter a valid email"
	MsgEmailInUse       = "Email already in use"
	MsgUsernameInUse    = "Username already in use"
	MsgPasswordLength   = "Password must be at least 8 characters long"
	MsgPasswordTooLong  = "Password must be at most 72 bytes long"
	MsgPasswordLower    = "Password must contain at least one lowercase letter"
	MsgPasswordUpper    = "Password must contain at least one uppercase letter"
	MsgPasswordDigit    = "Password must contain at least one number"
	MsgPasswordSpecial  = "Password must contain at least one special character"
	MsgPasswordMismatch = "Passwords do not match"

	MsgInvalidCredentials = "Invalid username or password"
	MsgSignUpError        = "An error occurred while signing up."
	MsgLoginStoreError    = "An error occurred while logging in."
	MsgLoginSessionError  = "An error occurred during login."
	MsgLogoutError        = "An error occurred during logout."
)

// AuthError is returned by every AuthService operation that fails.
// Messages are safe to show to the user; Err carries the internal cause.
type AuthError struct {
	Kind     FailureKind
	Messages []string
	Err      error
}

func (e *AuthError) Error() string {
	msg := e.Kind.String() + ": " + e.Message()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

// Message joins the user-facing messages into one flash line.
func (e *AuthError) Message() string {
	return strings.Join(e.Messages, ", ")
}

func newAuthError(kind FailureKind, err error, msgs ...string) *AuthError {
	return &AuthError{Kind: kind, Messages: msgs, Err: err}
}

// KindOf reports the FailureKind of err, or KindUnknown when err is not an AuthError.
func KindOf(err error) FailureKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// UserMessage returns the text that may be shown for err, falling back to def.
func UserMessage(err error, def string) string {
	var ae *AuthError
	if errors.As(err, &ae) && len(ae.Messages) > 0 {
		return ae.Message()
	}
	return def
}

package session

import (
	"fmt"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
)

// ErrNoSession is returned when an authenticated call is attempted without a
// stored, unexpired token.
var ErrNoSession = vocerrors.ErrNoSession

type Op string

const (
	OpLogin         Op = "login"
	OpSignup        Op = "signup"
	OpPasswordReset Op = "forget password"
)

// defaultMessage is shown when the server gives no reason for a failure.
func (op Op) defaultMessage() string {
	return fmt.Sprintf("An error occurred during %s", op)
}

// AuthError reports a failed login, signup or password reset. Message is
// meant for display.
type AuthError struct {
	Op      Op
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) Is(target error) bool {
	return target == vocerrors.ErrAuthFailed
}

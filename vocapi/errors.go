package vocapi

import (
	"errors"
	"net/http"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
)

// APIError is returned by every failed Client call. Message is suitable for
// showing to the user: the server's own message when it sent one, otherwise a
// fixed message for the operation.
type APIError struct {
	StatusCode int // zero when the request never got a response
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == vocerrors.ErrRemoteAPI
}

// IsUnauthorized reports whether err is an API rejection of the caller's credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

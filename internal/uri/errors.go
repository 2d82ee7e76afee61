package uri

import (
	"errors"
	"fmt"
)

var (
	errEmptyHost       = errors.New("hostname cannot be empty")
	errAuthority       = errors.New("invalid authority")
	errInvalidChar     = errors.New("invalid character")
	errInvalidEscape   = errors.New("invalid percent-encoding")
	errNotAbsolute     = errors.New("URI is not absolute")
	errUnexpectedParts = errors.New("URI has unexpected components")
)

// BuildError reports a target URI that could not be composed. It is a
// configuration error: no request must be sent after it.
type BuildError struct {
	Target string
	Err    error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("invalid URI: %v", e.Err)
	}
	return fmt.Sprintf("invalid URI %q: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}

// IsBuildError checks if an error is a BuildError
func IsBuildError(err error) bool {
	var buildErr *BuildError
	return errors.As(err, &buildErr)
}

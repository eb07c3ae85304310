// Package apperr defines the error kinds shared by every feature.
// Feature packages declare their own sentinel errors wrapping one of these kinds,
// so the transport layer can map any of them to a status code with errors.Is.
package apperr

import "errors"

var (
	// ErrUnauthenticated indicates a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates an authenticated caller lacking the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates that the entity is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates input the caller must correct before retrying.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable indicates that the referenced product cannot currently be ordered.
	ErrUnavailable = errors.New("unavailable")

	// ErrConflict indicates a uniqueness or concurrent-modification conflict.
	ErrConflict = errors.New("conflict")

	// ErrTooManyRequests indicates the caller exhausted an attempt budget.
	ErrTooManyRequests = errors.New("too many requests")
)

// Kind returns the shared kind wrapped by err, or nil when err is an internal fault.
func Kind(err error) error {
	for _, k := range []error{
		ErrUnauthenticated,
		ErrForbidden,
		ErrNotFound,
		ErrInvalidArgument,
		ErrUnavailable,
		ErrConflict,
		ErrTooManyRequests,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

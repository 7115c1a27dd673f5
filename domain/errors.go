package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAuthorization means no bearer credential was supplied.
	ErrMissingAuthorization = errors.New("missing authorization header")

	// ErrInvalidUser means the identity service answered but returned no
	// usable user for the credential.
	ErrInvalidUser = errors.New("invalid user")

	// ErrForbiddenRole means the authenticated account exists but is not a
	// buyer-role user.
	ErrForbiddenRole = errors.New("only users can access this endpoint")

	// ErrStoreUnavailable means the store could not be reached at
	// connection time.
	ErrStoreUnavailable = errors.New("database unavailable")
)

// UpstreamError wraps a failed call to the identity service. Body holds the
// upstream response body when one was received; Status is zero when the
// service was unreachable.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return "could not reach identity service"
	}
	return fmt.Sprintf("identity service returned status %d", e.Status)
}

// MissingTableError is the typed classification of schema drift: a query
// hit a table that does not exist in the configured database. Raised at the
// storage boundary so ranking logic never inspects driver error shapes.
type MissingTableError struct {
	Table string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("database missing table: %s", e.Table)
}

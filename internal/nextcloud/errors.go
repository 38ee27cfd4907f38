package nextcloud

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource does not exist on the
// server.  Deleting an already deleted resource also returns ErrNotFound.
var ErrNotFound = errors.New("resource not found")

// AuthError is returned when the server rejects the configured credentials.
// It is never retried.
type AuthError struct {
	Err error
}

func (ae *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected: %s", ae.Err)
}

func (ae *AuthError) Unwrap() error {
	return ae.Err
}

func (ae *AuthError) Is(target error) bool {
	return target == ae.Err
}

// TransportError wraps network level failures (DNS, connection refused,
// timeouts).  The underlying error is available via Unwrap.
type TransportError struct {
	Op  string // method and path of the failed call
	Err error
}

func (te *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %s", te.Op, te.Err)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

// PreconditionError is returned when a conditional update is rejected with
// HTTP 412 because the supplied ETag no longer matches the resource.  The
// caller may refetch the resource and retry with the current ETag.
type PreconditionError struct {
	ID   int64  // resource id
	ETag string // the ETag that was rejected
}

func (pe *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: note %d: etag %q does not match the current version", pe.ID, pe.ETag)
}

// StatusError is returned for any other unexpected HTTP status.
type StatusError struct {
	Code int
	Op   string
}

func (se *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status: %d", se.Op, se.Code)
}

// isPrecondition reports whether err is a precondition (ETag mismatch)
// failure.
func isPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

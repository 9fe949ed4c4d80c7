package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, rating out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write loses a race against a concurrent
// request — most importantly when appending a member to a booking group
// whose capacity or personality limit was consumed between the candidate
// scan and the write. The booking service retries the match on this error;
// handlers map retry exhaustion to HTTP 409. It is also returned when a
// unique constraint (e.g. user email) is violated.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when a request carries no valid session
// token or the credentials presented do not check out.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated user attempts an
// admin-only operation. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrPersonalityRequired is returned when a user who has not completed the
// personality test attempts to book. Handlers should map this to HTTP 400
// with an actionable message telling the user to take the test first.
var ErrPersonalityRequired = errors.New("personality test required")

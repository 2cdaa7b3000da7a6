// Package apperrors defines the error kinds shared by services and
// repositories. Handlers translate them to HTTP status codes with
// errors.Is; raw storage errors never decide a status directly.
package apperrors

import "errors"

var (
	// ErrNotFound indicates a referenced entity or edge is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation: a duplicate like or
	// follow, including the loser of a racing duplicate insert.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates an ownership violation.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfFollow indicates an attempt to follow oneself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

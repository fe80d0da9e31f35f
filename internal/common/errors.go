// Package common defines the sentinel error kinds shared across services and
// the HTTP surface. Callers should use errors.Is to match these values; the
// transport layer translates each kind into a stable status token.
package common

import "errors"

var (
	// ErrUnauthenticated indicates no resolvable caller identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidArgument indicates malformed or self-referential input.
	ErrInvalidArgument = errors.New("invalid-argument")

	// ErrAlreadyExists indicates a duplicate recruiter assignment.
	ErrAlreadyExists = errors.New("already-exists")

	// ErrNotFound indicates a missing user or target record.
	ErrNotFound = errors.New("not-found")

	// ErrPermissionDenied indicates a rank-comparison failure.
	ErrPermissionDenied = errors.New("permission-denied")

	// ErrInternal covers failures the caller cannot act upon.
	ErrInternal = errors.New("internal error")
)

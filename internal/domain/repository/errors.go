package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by AccountRepository.Create when the email
	// unique index rejects the insert. The index is the arbiter for concurrent
	// signups; callers must not rely on a prior lookup to rule this out.
	ErrDuplicateEmail = errors.New("duplicate email")
)

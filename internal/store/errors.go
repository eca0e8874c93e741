package store

import "errors"

var (
	// ErrNotFound means no row matched the query, including rows that
	// exist but belong to a different user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("already exists")
)

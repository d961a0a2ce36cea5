package store

import "errors"

var (
	// ErrFetch is returned when reading the remote table fails on transport
	// or parsing.
	ErrFetch = errors.New("fetching sheet failed")

	// ErrAuth is returned when a credential is missing or rejected.
	ErrAuth = errors.New("sheet authentication failed")

	// ErrWriteUnavailable is returned when the read-write client could not
	// be constructed.
	ErrWriteUnavailable = errors.New("read-write sheet client unavailable")

	// ErrRowNotFound is returned when no remote row matches the requested key.
	ErrRowNotFound = errors.New("no matching row in sheet")

	// ErrWrite is returned when a cell update fails on the remote call.
	ErrWrite = errors.New("writing sheet cell failed")
)

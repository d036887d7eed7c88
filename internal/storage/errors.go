package storage

import "errors"

var (
	// ErrPageIDRequired is returned when a write has no page id.
	ErrPageIDRequired = errors.New("storage: page id required")
	// ErrDatabaseRequired is returned when a bun store is built without a database.
	ErrDatabaseRequired = errors.New("storage: database not configured")
	// ErrUnsupportedDriver is returned for drivers other than sqlite and postgres.
	ErrUnsupportedDriver = errors.New("storage: unsupported driver")
)

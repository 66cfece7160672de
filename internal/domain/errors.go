package domain

import "errors"

var (
	// ErrKeyNotFound is returned when no key has the requested name.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists is returned when saving under a name that is already taken.
	ErrKeyExists = errors.New("key already exists")
)

package models

import "errors"

var (
	// ErrInvalidName is returned when an entity or component name is empty.
	ErrInvalidName = errors.New("invalid name")
	// ErrEntityNotFound is returned by lookups that never create.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityRemoved is returned when writing components to an entity that
	// has already been removed from its registry.
	ErrEntityRemoved = errors.New("entity removed")
)

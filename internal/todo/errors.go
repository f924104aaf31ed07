package todo

import "errors"

var (
	ErrEmptyTitle    = errors.New("empty todo title")
	ErrUnknownTodo   = errors.New("unknown todo")
	ErrUnknownFilter = errors.New("unknown filter")
)

// ErrInvalidData is returned by a handler whose data component is not an *Item.
var ErrInvalidData = errors.New("data component is not a todo item")

// ErrMissingState is returned when the shared flags or state resource is gone.
var ErrMissingState = errors.New("todo shared state missing")

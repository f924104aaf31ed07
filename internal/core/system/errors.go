package system

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSystemName is advisory: registration succeeds, Validate reports it.
	ErrDuplicateSystemName = errors.New("duplicate system name")
	ErrEmptySignature      = errors.New("empty system signature")
	ErrNilHandler          = errors.New("nil system handler")
	// ErrTickInProgress is returned when Tick is called from inside a running tick.
	ErrTickInProgress = errors.New("tick already in progress")
	ErrUnknownPolicy  = errors.New("unknown error policy")
)

// HandlerError records which system failed on which entity.
type HandlerError struct {
	System string
	Entity string
	Tick   uint64
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("tick %d: system %q on entity %q: %v", e.Tick, e.System, e.Entity, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

package system

import (
	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/models/interfaces"
)

// HandlerFunc is invoked once per matching entity per tick. The bag exposes
// exactly the components named by the system's signature.
type HandlerFunc func(c *Context, e *models.Entity, bag interfaces.ComponentBag) error

// System is a handler plus the component names an entity must hold for the
// handler to fire.
type System struct {
	Name      string
	Signature []string
	Handler   HandlerFunc
}

// ErrorPolicy decides what a tick does when a handler fails.
type ErrorPolicy uint8

const (
	// FailFast aborts the rest of the tick and returns the error.
	FailFast ErrorPolicy = iota
	// Isolate logs the error, keeps running and returns all errors at the end.
	Isolate
)

// ParseErrorPolicy maps config values to an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "fail_fast", "failfast":
		return FailFast, nil
	case "isolate":
		return Isolate, nil
	default:
		return FailFast, ErrUnknownPolicy
	}
}

func (p ErrorPolicy) String() string {
	switch p {
	case Isolate:
		return "isolate"
	default:
		return "fail_fast"
	}
}

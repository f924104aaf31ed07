package system

import (
	"github.com/zeusync/jecs/internal/core/events/bus"
	"github.com/zeusync/jecs/internal/core/models/interfaces"
	"github.com/zeusync/jecs/internal/core/observability/log"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards output.
func WithLogger(l log.Log) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithErrorPolicy selects how handler failures affect a tick.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithRegistry replaces the default in-memory entity registry.
func WithRegistry(r interfaces.EntityRegistry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithBus replaces the event bus that carries lifecycle hooks.
func WithBus(b bus.EventBus) Option {
	return func(e *Engine) {
		if b != nil {
			e.hooks = b
		}
	}
}

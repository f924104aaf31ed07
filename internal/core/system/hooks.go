package system

import (
	"time"

	"github.com/zeusync/jecs/internal/core/events/bus"
	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/observability/log"
)

// Lifecycle event types published on the engine bus.
const (
	EventTickBefore    = "tick:before"
	EventTickAfter     = "tick:after"
	EventEntityCreated = "entity:created"
	EventEntityRemoved = "entity:removed"
)

const hookSource = "engine"

// TickEvent is the payload of tick:before and tick:after.
type TickEvent struct {
	Engine *Engine
	Tick   uint64
}

// EntityEvent is the payload of entity:created and entity:removed.
type EntityEvent struct {
	Entity *models.Entity
}

// On subscribes fn to one of the lifecycle events.
func (e *Engine) On(eventType string, fn bus.EventHandler) (bus.Subscription, error) {
	return e.hooks.Subscribe(eventType, fn)
}

// OnTick subscribes fn to tick:before or tick:after with a typed payload.
func (e *Engine) OnTick(eventType string, fn func(TickEvent) error) (bus.Subscription, error) {
	return e.hooks.Subscribe(eventType, func(ev bus.Event) error {
		te, ok := ev.Data().(TickEvent)
		if !ok {
			return nil
		}
		return fn(te)
	})
}

func (e *Engine) publish(eventType string, data any) error {
	return e.hooks.Publish(bus.NewEvent(eventType, hookSource, data))
}

// hookLogger traces hook deliveries at debug level.
type hookLogger struct {
	logger log.Log
}

func (h hookLogger) OnPublish(string, bus.Event) {}

func (h hookLogger) OnDelivered(eventType string, handlers int, err error, took time.Duration) {
	fields := []log.Field{
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", took),
	}
	if err != nil {
		fields = append(fields, log.Error(err))
	}
	h.logger.Debug("hook delivered", fields...)
}

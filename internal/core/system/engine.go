package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/jecs/internal/core/events/bus"
	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/models/interfaces"
	"github.com/zeusync/jecs/internal/core/observability/log"
)

// Engine owns the entities, the ordered systems, the lifecycle hooks and the
// shared resources systems coordinate through. It is single-threaded: all
// calls, including Tick, must come from one goroutine.
type Engine struct {
	registry  interfaces.EntityRegistry
	systems   *Manager
	hooks     bus.EventBus
	logger    log.Log
	policy    ErrorPolicy
	resources map[string]any
	metrics   map[string]*Metrics

	tick    uint64
	running bool
}

// NewEngine creates an engine with an empty in-memory registry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry:  models.NewRegistry(),
		systems:   NewManager(),
		hooks:     bus.New(),
		logger:    log.NewNop(),
		policy:    FailFast,
		resources: make(map[string]any),
		metrics:   make(map[string]*Metrics),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger.GetLevel() == log.LevelDebug {
		e.hooks.AddObserver(hookLogger{logger: e.logger})
	}
	e.registry.OnEntityCreated(func(ent *models.Entity) {
		if err := e.publish(EventEntityCreated, EntityEvent{Entity: ent}); err != nil {
			e.logger.Warn("entity:created hook failed", log.String("entity", ent.Name()), log.Error(err))
		}
	})
	e.registry.OnEntityRemoved(func(ent *models.Entity) {
		if err := e.publish(EventEntityRemoved, EntityEvent{Entity: ent}); err != nil {
			e.logger.Warn("entity:removed hook failed", log.String("entity", ent.Name()), log.Error(err))
		}
	})
	return e
}

// Entity returns the entity called name, creating it if needed.
func (e *Engine) Entity(name string) (*models.Entity, error) {
	return e.registry.Entity(name)
}

// GetEntity looks an entity up without creating it.
func (e *Engine) GetEntity(name string) (*models.Entity, bool) {
	return e.registry.GetEntity(name)
}

// RemoveEntity deletes an entity and its components; unknown names are ignored.
func (e *Engine) RemoveEntity(name string) {
	e.registry.RemoveEntity(name)
}

// Registry exposes the entity registry.
func (e *Engine) Registry() interfaces.EntityRegistry { return e.registry }

// Systems exposes the system manager.
func (e *Engine) Systems() *Manager { return e.systems }

// Logger returns the engine logger.
func (e *Engine) Logger() log.Log { return e.logger }

// Ticks returns how many ticks have been started.
func (e *Engine) Ticks() uint64 { return e.tick }

// System registers a system to run after every system registered before it.
func (e *Engine) System(name string, signature []string, handler HandlerFunc) error {
	if e.systems.HasSystem(name) {
		e.logger.Warn("system name registered twice", log.String("system", name))
	}
	if err := e.systems.Register(System{Name: name, Signature: signature, Handler: handler}); err != nil {
		return err
	}
	if _, ok := e.metrics[name]; !ok {
		e.metrics[name] = &Metrics{}
	}
	return nil
}

// Tick runs every registered system once, in registration order.
//
// Each system's matching set is computed when its turn starts, so tags
// attached by an earlier system in the same tick are seen by later ones.
// Entities removed, or that lost part of the signature, after the set was
// computed are skipped. Calling Tick from inside a handler or hook returns
// ErrTickInProgress.
func (e *Engine) Tick(ctx context.Context) error {
	if e.running {
		return ErrTickInProgress
	}
	if ctx == nil {
		ctx = context.Background()
	}
	e.running = true
	defer func() { e.running = false }()

	e.tick++
	n := e.tick

	if err := e.publish(EventTickBefore, TickEvent{Engine: e, Tick: n}); err != nil {
		return fmt.Errorf("tick %d: %s hook: %w", n, EventTickBefore, err)
	}

	var failures error
	for _, s := range e.systems.ListSystems() {
		if err := e.runSystem(ctx, n, s); err != nil {
			if e.policy == FailFast {
				return err
			}
			failures = errors.Join(failures, err)
		}
	}

	if err := e.publish(EventTickAfter, TickEvent{Engine: e, Tick: n}); err != nil {
		failures = errors.Join(failures, fmt.Errorf("tick %d: %s hook: %w", n, EventTickAfter, err))
	}
	return failures
}

func (e *Engine) runSystem(ctx context.Context, tick uint64, s System) error {
	start := time.Now()
	matched := e.registry.Query(s.Signature)
	c := &Context{
		ctx:    ctx,
		engine: e,
		tick:   tick,
		system: s.Name,
		logger: e.logger.With(log.String("system", s.Name)),
	}

	visited := 0
	var failures error
	for _, ent := range matched {
		if !e.registry.Contains(ent) || !ent.HasComponents(s.Signature) {
			continue
		}
		visited++
		err := s.Handler(c, ent, models.NewBag(ent, s.Signature))
		if err == nil {
			continue
		}
		herr := &HandlerError{System: s.Name, Entity: ent.Name(), Tick: tick, Err: err}
		if e.policy == FailFast {
			e.recordMetrics(s.Name, tick, visited, time.Since(start), herr)
			return herr
		}
		e.logger.Error("system handler failed", log.String("system", s.Name), log.String("entity", ent.Name()), log.Error(err))
		failures = errors.Join(failures, herr)
	}

	took := time.Since(start)
	e.recordMetrics(s.Name, tick, visited, took, failures)
	e.logger.Debug("system ran",
		log.String("system", s.Name),
		log.Uint64("tick", tick),
		log.Int("entities", visited),
		log.Duration("took", took),
	)
	return failures
}

func (e *Engine) recordMetrics(name string, tick uint64, entities int, took time.Duration, err error) {
	m, ok := e.metrics[name]
	if !ok {
		m = &Metrics{}
		e.metrics[name] = m
	}
	m.record(tick, entities, took, err)
}

// SystemMetrics returns a copy of the metrics of the named system.
func (e *Engine) SystemMetrics(name string) (Metrics, bool) {
	m, ok := e.metrics[name]
	if !ok {
		return Metrics{}, false
	}
	return *m, true
}

// Metrics returns a copy of every system's metrics keyed by name.
func (e *Engine) Metrics() map[string]Metrics {
	out := make(map[string]Metrics, len(e.metrics))
	for k, v := range e.metrics {
		out[k] = *v
	}
	return out
}

// SetResource stores shared state under name.
func (e *Engine) SetResource(name string, value any) {
	e.resources[name] = value
}

// GetResource returns the shared state stored under name.
func (e *Engine) GetResource(name string) (any, bool) {
	v, ok := e.resources[name]
	return v, ok
}

// RemoveResource deletes the shared state stored under name.
func (e *Engine) RemoveResource(name string) {
	delete(e.resources, name)
}

// Resource fetches a resource and asserts it to T.
func Resource[T any](e *Engine, name string) (T, bool) {
	var zero T
	v, ok := e.resources[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

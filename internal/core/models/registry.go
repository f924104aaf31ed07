package models

import (
	"fmt"

	"github.com/zeusync/jecs/pkg/sequence"
)

// Registry maps entity names to entities and remembers creation order.
// It is not safe for concurrent use; the engine drives it from one goroutine.
type Registry struct {
	byName map[string]*Entity
	order  []*Entity

	onCreated          []func(*Entity)
	onRemoved          []func(*Entity)
	onComponentAdded   []func(*Entity, string)
	onComponentRemoved []func(*Entity, string)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Entity, 64),
		order:  make([]*Entity, 0, 64),
	}
}

// Entity returns the entity called name, creating it with an empty component
// store when absent. Calling it twice with the same name yields the same
// entity and leaves its components untouched.
func (r *Registry) Entity(name string) (*Entity, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("entity %q: %w", name, ErrInvalidName)
	}
	if e, ok := r.byName[name]; ok {
		return e, nil
	}
	e := newEntity(name, r)
	r.byName[name] = e
	r.order = append(r.order, e)
	for _, fn := range r.onCreated {
		fn(e)
	}
	return e, nil
}

// GetEntity looks name up without creating it.
func (r *Registry) GetEntity(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Lookup is GetEntity for callers that prefer an error.
func (r *Registry) Lookup(name string) (*Entity, error) {
	if e, ok := r.byName[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("entity %q: %w", name, ErrEntityNotFound)
}

// Contains reports whether e is the live entity registered under its name.
func (r *Registry) Contains(e *Entity) bool {
	if e == nil {
		return false
	}
	cur, ok := r.byName[e.name]
	return ok && cur == e
}

// RemoveEntity deletes the entity and its whole component store. Unknown
// names are ignored so systems can remove entities they are iterating.
func (r *Registry) RemoveEntity(name string) {
	e, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	for i, cur := range r.order {
		if cur == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	e.store.Clear()
	e.removed = true
	for _, fn := range r.onRemoved {
		fn(e)
	}
}

// Entities returns a snapshot of live entities in creation order.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, len(r.order))
	copy(out, r.order)
	return out
}

// Query returns, in creation order, the entities holding every name in signature.
func (r *Registry) Query(signature []string) []*Entity {
	return sequence.From(r.order).
		Filter(func(e *Entity) bool { return e.store.HasAll(signature) }).
		Collect()
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// OnEntityCreated registers fn to run after an entity is created.
func (r *Registry) OnEntityCreated(fn func(*Entity)) {
	r.onCreated = append(r.onCreated, fn)
}

// OnEntityRemoved registers fn to run after an entity is removed.
func (r *Registry) OnEntityRemoved(fn func(*Entity)) {
	r.onRemoved = append(r.onRemoved, fn)
}

// OnComponentAdded registers fn to run after any component is set.
func (r *Registry) OnComponentAdded(fn func(*Entity, string)) {
	r.onComponentAdded = append(r.onComponentAdded, fn)
}

// OnComponentRemoved registers fn to run after a component is detached.
func (r *Registry) OnComponentRemoved(fn func(*Entity, string)) {
	r.onComponentRemoved = append(r.onComponentRemoved, fn)
}

func (r *Registry) notifyComponentAdded(e *Entity, name string) {
	for _, fn := range r.onComponentAdded {
		fn(e, name)
	}
}

func (r *Registry) notifyComponentRemoved(e *Entity, name string) {
	for _, fn := range r.onComponentRemoved {
		fn(e, name)
	}
}

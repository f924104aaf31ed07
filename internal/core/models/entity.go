package models

// Entity is a uniquely named object owning exactly one ComponentStore.
type Entity struct {
	name     string
	store    *ComponentStore
	registry *Registry
	removed  bool
}

func newEntity(name string, registry *Registry) *Entity {
	return &Entity{
		name:     name,
		store:    NewComponentStore(),
		registry: registry,
	}
}

// Name returns the primary key of the entity.
func (e *Entity) Name() string { return e.name }

// Removed reports whether the entity was removed from its registry.
func (e *Entity) Removed() bool { return e.removed }

// SetComponent attaches value under name, overwriting any previous value.
// Writing to a removed entity returns ErrEntityRemoved.
func (e *Entity) SetComponent(name string, value any) error {
	if e.removed {
		return ErrEntityRemoved
	}
	if err := e.store.Set(name, value); err != nil {
		return err
	}
	if e.registry != nil {
		e.registry.notifyComponentAdded(e, name)
	}
	return nil
}

// Tag attaches an empty Tag component under name.
func (e *Entity) Tag(name string) error {
	return e.SetComponent(name, Tag{})
}

// GetComponent returns the component under name, if attached.
func (e *Entity) GetComponent(name string) (any, bool) {
	return e.store.Get(name)
}

// HasComponent reports whether name is attached.
func (e *Entity) HasComponent(name string) bool {
	return e.store.Has(name)
}

// HasComponents reports whether every one of names is attached.
func (e *Entity) HasComponents(names []string) bool {
	return e.store.HasAll(names)
}

// DeleteComponent detaches name; absent components are ignored.
func (e *Entity) DeleteComponent(name string) {
	if !e.store.Has(name) {
		return
	}
	e.store.Delete(name)
	if e.registry != nil {
		e.registry.notifyComponentRemoved(e, name)
	}
}

// ComponentNames lists the attached components in attach order.
func (e *Entity) ComponentNames() []string {
	return e.store.Names()
}

// Store exposes the underlying component store.
func (e *Entity) Store() *ComponentStore {
	return e.store
}

// Component fetches name from e and asserts it to T.
func Component[T any](e *Entity, name string) (T, bool) {
	return GetAs[T](e.store, name)
}

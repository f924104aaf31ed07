package models

import "strings"

// Tag is the value conventionally stored for components whose presence alone
// is the signal (insert, update, destroy and friends).
type Tag struct{}

// ComponentStore maps component names to values for a single entity.
// Names keep their attach order so dumps and bags are deterministic.
type ComponentStore struct {
	values map[string]any
	order  []string
}

// NewComponentStore creates an empty store.
func NewComponentStore() *ComponentStore {
	return &ComponentStore{
		values: make(map[string]any, 4),
		order:  make([]string, 0, 4),
	}
}

// Set inserts or overwrites the value stored under name.
// A nil value is a valid payload; presence is tracked separately.
func (s *ComponentStore) Set(name string, value any) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = value
	return nil
}

// Get returns the value under name. Missing components are reported through
// the boolean, never through an error.
func (s *ComponentStore) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether a component named name is attached.
func (s *ComponentStore) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// HasAll reports whether every name is attached.
func (s *ComponentStore) HasAll(names []string) bool {
	for _, n := range names {
		if _, ok := s.values[n]; !ok {
			return false
		}
	}
	return true
}

// Delete detaches name. Deleting an absent component is a no-op.
func (s *ComponentStore) Delete(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Names returns the attached component names in attach order.
func (s *ComponentStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of attached components.
func (s *ComponentStore) Len() int {
	return len(s.values)
}

// Clear detaches every component.
func (s *ComponentStore) Clear() {
	clear(s.values)
	s.order = s.order[:0]
}

// GetAs fetches name and asserts it to T. A missing component or a value of a
// different type yields the zero T and false.
func GetAs[T any](s *ComponentStore, name string) (T, bool) {
	var zero T
	v, ok := s.values[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// ValidName reports whether name can be used as an entity or component key.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

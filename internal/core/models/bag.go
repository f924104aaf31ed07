package models

// Bag is the view handed to a system handler: the components of one entity
// restricted to the names of the system's signature.
type Bag struct {
	entity *Entity
	names  []string
}

// NewBag builds a bag over e restricted to names.
func NewBag(e *Entity, names []string) Bag {
	return Bag{entity: e, names: names}
}

// Get returns the component called name when it is part of the signature and
// still attached to the entity.
func (b Bag) Get(name string) (any, bool) {
	if !b.allowed(name) {
		return nil, false
	}
	return b.entity.store.Get(name)
}

// Has reports whether name is part of the signature and still attached.
func (b Bag) Has(name string) bool {
	return b.allowed(name) && b.entity.store.Has(name)
}

// Names returns the signature the bag is restricted to.
func (b Bag) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

func (b Bag) allowed(name string) bool {
	for _, n := range b.names {
		if n == name {
			return true
		}
	}
	return false
}

// BagValue fetches name from b and asserts it to T.
func BagValue[T any](b interface{ Get(string) (any, bool) }, name string) (T, bool) {
	var zero T
	v, ok := b.Get(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

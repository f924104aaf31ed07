package models

import "iter"

// All yields a snapshot of the live entities in creation order. Entities
// removed while the sequence is being consumed are skipped.
func (r *Registry) All() iter.Seq[*Entity] {
	snapshot := r.Entities()
	return func(yield func(*Entity) bool) {
		for _, e := range snapshot {
			if e.removed {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

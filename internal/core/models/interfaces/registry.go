package interfaces

import (
	"iter"

	"github.com/zeusync/jecs/internal/core/models"
)

// EntityRegistry is what the engine needs from an entity store.
type EntityRegistry interface {
	// Entity lifecycle

	Entity(name string) (*models.Entity, error)
	GetEntity(name string) (*models.Entity, bool)
	RemoveEntity(name string)
	Contains(*models.Entity) bool

	// Queries

	Entities() []*models.Entity
	Query(signature []string) []*models.Entity
	All() iter.Seq[*models.Entity]
	Len() int

	// Event notifications

	OnEntityCreated(func(*models.Entity))
	OnEntityRemoved(func(*models.Entity))
}

var _ EntityRegistry = (*models.Registry)(nil)

package interfaces

import (
	"github.com/zeusync/jecs/internal/core/models"
)

// ComponentBag is the capability a system handler receives: read access to
// the components named by the system's signature.
type ComponentBag interface {
	Get(name string) (any, bool)
	Has(name string) bool
	Names() []string
}

var _ ComponentBag = models.Bag{}

package system

import (
	"errors"
	"fmt"

	"github.com/zeusync/jecs/internal/core/models"
)

// Manager holds systems in registration order. Order is the execution order
// of a tick; there is no unregistration.
type Manager struct {
	systems []System
	names   map[string]int
}

func NewManager() *Manager {
	return &Manager{
		systems: make([]System, 0, 16),
		names:   make(map[string]int, 16),
	}
}

// Register appends s. A name that is already taken is accepted; use Validate
// to surface duplicates.
func (m *Manager) Register(s System) error {
	if !models.ValidName(s.Name) {
		return fmt.Errorf("system %q: %w", s.Name, models.ErrInvalidName)
	}
	if len(s.Signature) == 0 {
		return fmt.Errorf("system %q: %w", s.Name, ErrEmptySignature)
	}
	for _, c := range s.Signature {
		if !models.ValidName(c) {
			return fmt.Errorf("system %q component %q: %w", s.Name, c, models.ErrInvalidName)
		}
	}
	if s.Handler == nil {
		return fmt.Errorf("system %q: %w", s.Name, ErrNilHandler)
	}
	sig := make([]string, len(s.Signature))
	copy(sig, s.Signature)
	s.Signature = sig
	m.systems = append(m.systems, s)
	m.names[s.Name]++
	return nil
}

// HasSystem reports whether a system called name is registered.
func (m *Manager) HasSystem(name string) bool {
	return m.names[name] > 0
}

// ListSystems returns the systems in execution order.
func (m *Manager) ListSystems() []System {
	out := make([]System, len(m.systems))
	copy(out, m.systems)
	return out
}

// GetExecutionOrder returns system names in execution order.
func (m *Manager) GetExecutionOrder() []string {
	out := make([]string, len(m.systems))
	for i, s := range m.systems {
		out[i] = s.Name
	}
	return out
}

// Len returns the number of registered systems.
func (m *Manager) Len() int {
	return len(m.systems)
}

// Validate reports every name registered more than once.
func (m *Manager) Validate() error {
	var all error
	seen := make(map[string]bool, len(m.names))
	for _, s := range m.systems {
		if m.names[s.Name] > 1 && !seen[s.Name] {
			seen[s.Name] = true
			all = errors.Join(all, fmt.Errorf("system %q registered %d times: %w", s.Name, m.names[s.Name], ErrDuplicateSystemName))
		}
	}
	return all
}

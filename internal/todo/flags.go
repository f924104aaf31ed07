package todo

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Filter selects which rows the view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter accepts all, active and completed.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return FilterAll, fmt.Errorf("%q: %w", s, ErrUnknownFilter)
	}
}

// Shows reports whether an item with the given completion is visible.
func (f Filter) Shows(completed bool) bool {
	switch f {
	case FilterActive:
		return !completed
	case FilterCompleted:
		return completed
	default:
		return true
	}
}

// MarkAll is an auto-clearing broadcast: while active, every todo's
// completed field is forced to the state. Housekeeping resets it each tick.
type MarkAll struct {
	active bool
	state  *bool
}

// Set arms the broadcast with state.
func (m *MarkAll) Set(state bool) {
	m.active = true
	m.state = &state
}

// Active reports whether the broadcast is armed.
func (m MarkAll) Active() bool { return m.active }

// State returns the broadcast value; ok is false while unset.
func (m MarkAll) State() (state bool, ok bool) {
	if m.state == nil {
		return false, false
	}
	return *m.state, true
}

// Reset disarms the broadcast and forgets the state.
func (m *MarkAll) Reset() {
	m.active = false
	m.state = nil
}

func (m MarkAll) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Active bool  `json:"active"`
		State  *bool `json:"state"`
	}{m.active, m.state})
}

// Flags are the process-wide switches systems coordinate through.
type Flags struct {
	DestroyCompleted bool    `json:"destroy_completed_todos"`
	MarkAll          MarkAll `json:"mark_all_as_completed_todos"`
}

// State is the application state recomputed or consulted every tick.
type State struct {
	Filter          Filter `json:"filter"`
	TodoCount       int    `json:"todoCount"`
	ActiveTodoCount int    `json:"activeTodoCount"`
}

// CompletedCount returns how many todos are completed.
func (s State) CompletedCount() int {
	return s.TodoCount - s.ActiveTodoCount
}

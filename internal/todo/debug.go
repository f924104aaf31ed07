package todo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/pkg/generic"
)

var buffers = generic.NewResetPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// EntityDump is the verbose debug form of a todo entity.
type EntityDump struct {
	Name       string         `json:"name"`
	Components map[string]any `json:"components"`
}

// debugDump collects todos every tick and, while Display is on, writes the
// application state to out.
type debugDump struct {
	Display bool
	Verbose bool
	out     io.Writer
	todos   []any
}

func (d *debugDump) reset() {
	d.todos = make([]any, 0, len(d.todos))
}

func (d *debugDump) gather(e *models.Entity, item Item) {
	if !d.Verbose {
		d.todos = append(d.todos, item)
		return
	}
	components := make(map[string]any, e.Store().Len())
	for _, name := range e.ComponentNames() {
		v, _ := e.GetComponent(name)
		components[name] = v
	}
	d.todos = append(d.todos, EntityDump{Name: e.Name(), Components: components})
}

func (d *debugDump) dump(state State, flags Flags) error {
	if !d.Display || d.out == nil {
		return nil
	}
	buf := buffers.Get()
	defer buffers.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		App    State `json:"app"`
		System Flags `json:"system"`
		Todos  []any `json:"todos"`
	}{state, flags, d.todos}); err != nil {
		return fmt.Errorf("encode debug dump: %w", err)
	}
	_, err := d.out.Write(buf.Bytes())
	return err
}

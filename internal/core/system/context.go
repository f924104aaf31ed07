package system

import (
	"context"

	"github.com/zeusync/jecs/internal/core/observability/log"
)

// Context is handed to every handler invocation of one system turn.
type Context struct {
	ctx    context.Context
	engine *Engine
	tick   uint64
	system string
	logger log.Log
}

// Context returns the context passed to Engine.Tick, for handlers doing I/O.
func (c *Context) Context() context.Context { return c.ctx }

// Engine returns the engine running the tick.
func (c *Context) Engine() *Engine { return c.engine }

// Tick returns the 1-based number of the running tick.
func (c *Context) Tick() uint64 { return c.tick }

// System returns the name of the system being run.
func (c *Context) System() string { return c.system }

// Logger returns a logger annotated with the system name.
func (c *Context) Logger() log.Log { return c.logger }

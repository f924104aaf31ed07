package server

import "github.com/zeusync/jecs/internal/todo"

// Command ops accepted on the websocket.
const (
	OpSync      = "sync"
	OpAdd       = "add"
	OpToggle    = "toggle"
	OpEdit      = "edit"
	OpCommit    = "commit"
	OpAbort     = "abort"
	OpDestroy   = "destroy"
	OpClear     = "clear"
	OpMarkAll   = "mark_all"
	OpFilter    = "filter"
	OpDebugDump = "debug"
)

// Command is a client frame. Only the fields the op needs are read.
type Command struct {
	Op        string `json:"op"`
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Completed bool   `json:"completed,omitempty"`
	Filter    string `json:"filter,omitempty"`
	Display   bool   `json:"display,omitempty"`
	Verbose   bool   `json:"verbose,omitempty"`
}

// Frame is a server frame: the list after the command ran, plus the error
// the command produced for the client that sent it.
type Frame struct {
	todo.Snapshot
	Error string `json:"error,omitempty"`
}

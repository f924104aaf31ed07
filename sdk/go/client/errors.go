package client

import "errors"

// Client-specific errors
var (
	ErrClientClosed = errors.New("client is closed")
	// ErrRemote wraps the error text a server frame carried.
	ErrRemote = errors.New("server rejected command")
)

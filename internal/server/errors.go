package server

import "errors"

// Server-specific errors
var (
	ErrServerClosed         = errors.New("server is closed")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrUnknownOp            = errors.New("unknown command op")
	ErrInvalidMessage       = errors.New("invalid message")
	ErrUnauthorized         = errors.New("unauthorized")
)

package storage

import "errors"

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrEmptyKey      = errors.New("empty key")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrClosed        = errors.New("storage closed")
)

package storage

import (
	"fmt"

	"github.com/zeusync/jecs/internal/core/storage/interfaces"
)

// Config selects and configures a backend.
type Config struct {
	Driver    string // memory, file or redis
	Path      string
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// Open builds the backend named by cfg.Driver.
func Open(cfg Config) (interfaces.Storage, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(defaultShardCount), nil
	case "file":
		return NewFile(cfg.Path)
	case "redis":
		return NewRedis(RedisOptions{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}, cfg.Namespace), nil
	default:
		return nil, fmt.Errorf("%s: %w", cfg.Driver, ErrUnknownDriver)
	}
}

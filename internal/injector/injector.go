//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/jecs/internal/config"
	"github.com/zeusync/jecs/internal/server"
)

func InitializeTodo(cfg *config.Config) (*Todo, func(), error) {
	wire.Build(TodoSet)
	return nil, nil, nil
}

func InitializeServer(cfg *config.Config) (*server.Server, func(), error) {
	wire.Build(ServerSet)
	return nil, nil, nil
}

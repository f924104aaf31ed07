package injector

import (
	"context"
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/jecs/internal/config"
	"github.com/zeusync/jecs/internal/core/observability/log"
	"github.com/zeusync/jecs/internal/core/storage"
	"github.com/zeusync/jecs/internal/core/storage/interfaces"
	"github.com/zeusync/jecs/internal/core/system"
	"github.com/zeusync/jecs/internal/server"
	"github.com/zeusync/jecs/internal/todo"
)

// Todo is a ready-to-drive app with the view it renders to.
type Todo struct {
	App    *todo.App
	View   *todo.MemoryView
	Logger *log.Logger
}

var TodoSet = wire.NewSet(
	ProvideLogger,
	ProvideStorage,
	ProvideEngine,
	ProvideView,
	ProvideApp,
	wire.Bind(new(todo.View), new(*todo.MemoryView)),
	wire.Struct(new(Todo), "*"),
)

var ServerSet = wire.NewSet(
	TodoSet,
	ProvideServer,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	return log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
}

func ProvideStorage(cfg *config.Config) (interfaces.Storage, func(), error) {
	store, err := storage.Open(storage.Config{
		Driver:    cfg.Storage.Driver,
		Path:      cfg.Storage.Path,
		Addr:      cfg.Storage.Redis.Addr,
		Password:  cfg.Storage.Redis.Password,
		DB:        cfg.Storage.Redis.DB,
		Namespace: cfg.Storage.Redis.Namespace,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func ProvideEngine(cfg *config.Config, logger *log.Logger) (*system.Engine, error) {
	policy, err := system.ParseErrorPolicy(cfg.Engine.ErrorPolicy)
	if err != nil {
		return nil, err
	}
	return system.NewEngine(system.WithLogger(logger), system.WithErrorPolicy(policy)), nil
}

func ProvideView() *todo.MemoryView {
	return todo.NewMemoryView()
}

// ProvideApp builds the app and loads the stored list with a first tick.
func ProvideApp(cfg *config.Config, engine *system.Engine, view todo.View, store interfaces.Storage) (*todo.App, error) {
	app, err := todo.New(engine, view,
		todo.WithStorage(store, cfg.Storage.Key),
		todo.WithDebug(cfg.Todo.Debug, cfg.Todo.Verbose),
	)
	if err != nil {
		return nil, err
	}
	if err := app.Load(context.Background()); err != nil {
		return nil, err
	}
	return app, nil
}

func ProvideServer(cfg *config.Config, app *todo.App, logger *log.Logger) *server.Server {
	sc := server.DefaultServerConfig()
	sc.ListenAddr = cfg.Server.Addr()
	sc.Token = cfg.Server.Token
	return server.NewServer(sc, app, logger)
}

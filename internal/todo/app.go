package todo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/observability/log"
	"github.com/zeusync/jecs/internal/core/storage/interfaces"
	"github.com/zeusync/jecs/internal/core/system"
)

// App is the todo list expressed as engine systems. User intents only write
// components or flags and then run one tick; the systems do the rest.
// Like the engine, an App must be driven from a single goroutine.
type App struct {
	engine  *system.Engine
	view    View
	ids     IDGenerator
	logger  log.Log
	persist *persistence
	debug   *debugDump
}

// Option configures an App.
type Option func(*App)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(a *App) {
		a.ids = ids
	}
}

// WithStorage persists the todo list in store under key.
func WithStorage(store interfaces.Storage, key string) Option {
	return func(a *App) {
		a.persist.store = store
		if key != "" {
			a.persist.key = key
		}
	}
}

// WithDebug turns the per-tick state dump on.
func WithDebug(display, verbose bool) Option {
	return func(a *App) {
		a.debug.Display = display
		a.debug.Verbose = verbose
	}
}

// WithDebugOutput redirects the state dump, stdout by default.
func WithDebugOutput(w io.Writer) Option {
	return func(a *App) {
		a.debug.out = w
	}
}

// New installs the todo systems, shared state and housekeeping entity on engine.
func New(engine *system.Engine, view View, opts ...Option) (*App, error) {
	a := &App{
		engine:  engine,
		view:    view,
		ids:     UUIDGenerator{},
		logger:  engine.Logger().With(log.String("component", "todo")),
		persist: &persistence{key: defaultStorageKey},
		debug:   &debugDump{out: os.Stdout},
	}
	for _, opt := range opts {
		opt(a)
	}

	engine.SetResource(resourceFlags, &Flags{})
	engine.SetResource(resourceState, &State{Filter: FilterAll})

	step, err := engine.Entity(SingleStepEntity)
	if err != nil {
		return nil, err
	}
	if err := step.Tag(TagHousekeeping); err != nil {
		return nil, err
	}
	if err := a.registerSystems(); err != nil {
		return nil, err
	}
	if _, err := engine.OnTick(system.EventTickAfter, a.afterTick); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) afterTick(ev system.TickEvent) error {
	s := a.State()
	a.logger.Debug("tick complete",
		log.Uint64("tick", ev.Tick),
		log.Int("todos", s.TodoCount),
		log.Int("active", s.ActiveTodoCount),
	)
	return nil
}

// Engine returns the engine the app runs on.
func (a *App) Engine() *system.Engine { return a.engine }

// View returns the view the app renders to.
func (a *App) View() View { return a.view }

// Tick runs every system once.
func (a *App) Tick(ctx context.Context) error {
	return a.engine.Tick(ctx)
}

// Load creates one entity per stored item and boots the pipeline with a tick.
func (a *App) Load(ctx context.Context) error {
	items, err := a.persist.load(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = a.ids.NewID()
		}
		if _, err := a.create(item); err != nil {
			return err
		}
	}
	a.logger.Info("todos loaded", log.Int("count", len(items)))
	return a.Tick(ctx)
}

func (a *App) create(item Item) (*models.Entity, error) {
	e, err := a.engine.Entity(EntityName(item.ID))
	if err != nil {
		return nil, err
	}
	stored := item
	if err := e.SetComponent(ComponentData, &stored); err != nil {
		return nil, err
	}
	return e, nil
}

func (a *App) lookup(id string) (*models.Entity, *Item, error) {
	e, ok := a.engine.GetEntity(EntityName(id))
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", id, ErrUnknownTodo)
	}
	item, ok := models.Component[*Item](e, ComponentData)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", id, ErrInvalidData)
	}
	return e, item, nil
}

// Add creates an active todo with the trimmed title and returns its id.
func (a *App) Add(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	id := a.ids.NewID()
	if _, err := a.create(Item{Title: title, ID: id}); err != nil {
		return "", err
	}
	return id, a.Tick(ctx)
}

// Toggle flips the completed field of a todo.
func (a *App) Toggle(ctx context.Context, id string) error {
	_, item, err := a.lookup(id)
	if err != nil {
		return err
	}
	item.Completed = !item.Completed
	return a.Tick(ctx)
}

// Edit switches a todo's row into editing mode.
func (a *App) Edit(ctx context.Context, id string) error {
	e, _, err := a.lookup(id)
	if err != nil {
		return err
	}
	if err := e.Tag(TagEditingMode); err != nil {
		return err
	}
	return a.Tick(ctx)
}

// CommitEdit leaves editing mode keeping text as the new title. Blank text
// destroys the todo.
func (a *App) CommitEdit(ctx context.Context, id, text string) error {
	e, _, err := a.lookup(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		if err := e.Tag(TagDestroy); err != nil {
			return err
		}
		return a.Tick(ctx)
	}
	if err := e.SetComponent(TagEditingModeOff, EditResult{Value: text}); err != nil {
		return err
	}
	return a.Tick(ctx)
}

// AbortEdit leaves editing mode without touching the title.
func (a *App) AbortEdit(ctx context.Context, id string) error {
	e, _, err := a.lookup(id)
	if err != nil {
		return err
	}
	if err := e.SetComponent(TagEditingModeOff, EditResult{Aborted: true}); err != nil {
		return err
	}
	return a.Tick(ctx)
}

// Destroy removes a todo.
func (a *App) Destroy(ctx context.Context, id string) error {
	e, _, err := a.lookup(id)
	if err != nil {
		return err
	}
	if err := e.Tag(TagDestroy); err != nil {
		return err
	}
	return a.Tick(ctx)
}

// ClearCompleted removes every completed todo.
func (a *App) ClearCompleted(ctx context.Context) error {
	flags, err := a.flags()
	if err != nil {
		return err
	}
	flags.DestroyCompleted = true
	return a.Tick(ctx)
}

// MarkAll sets every todo's completed field to completed.
func (a *App) MarkAll(ctx context.Context, completed bool) error {
	flags, err := a.flags()
	if err != nil {
		return err
	}
	flags.MarkAll.Set(completed)
	return a.Tick(ctx)
}

// SetFilter changes which rows are visible.
func (a *App) SetFilter(ctx context.Context, f Filter) error {
	if _, err := ParseFilter(string(f)); err != nil {
		return err
	}
	state, err := a.state()
	if err != nil {
		return err
	}
	state.Filter = f
	return a.Tick(ctx)
}

// SetDebug toggles the state dump and its verbose entity form.
func (a *App) SetDebug(ctx context.Context, display, verbose bool) error {
	a.debug.Display = display
	a.debug.Verbose = verbose
	return a.Tick(ctx)
}

func (a *App) flags() (*Flags, error) { return sharedFlags(a.engine) }

func (a *App) state() (*State, error) { return sharedState(a.engine) }

// State returns a copy of the application state as of the last tick.
func (a *App) State() State {
	s, err := a.state()
	if err != nil {
		return State{Filter: FilterAll}
	}
	return *s
}

// Flags returns a copy of the shared flags.
func (a *App) Flags() Flags {
	f, err := a.flags()
	if err != nil {
		return Flags{}
	}
	return *f
}

// Items returns copies of every todo in creation order.
func (a *App) Items() []Item {
	entities := a.engine.Registry().Query(dataOnly)
	out := make([]Item, 0, len(entities))
	for _, e := range entities {
		if item, ok := models.Component[*Item](e, ComponentData); ok {
			out = append(out, *item)
		}
	}
	return out
}

// Saved returns the list handed to storage on the last tick.
func (a *App) Saved() []Item {
	return a.persist.saved()
}

// ItemAt returns the id of the n-th todo, counting from one in row order.
func (a *App) ItemAt(n int) (string, error) {
	items := a.Items()
	if n < 1 || n > len(items) {
		return "", fmt.Errorf("#%d: %w", n, ErrUnknownTodo)
	}
	return items[n-1].ID, nil
}

// Snapshot is a consistent read of the list, the state and the footer.
type Snapshot struct {
	Tick   uint64 `json:"tick"`
	Items  []Item `json:"items"`
	State  State  `json:"state"`
	Footer Footer `json:"footer"`
}

// Snapshot captures the app as of the last tick.
func (a *App) Snapshot() Snapshot {
	s := a.State()
	return Snapshot{
		Tick:   a.engine.Ticks(),
		Items:  a.Items(),
		State:  s,
		Footer: footerFor(s),
	}
}

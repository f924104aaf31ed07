package todo

import (
	"fmt"
	"strings"

	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/models/interfaces"
	"github.com/zeusync/jecs/internal/core/observability/log"
	"github.com/zeusync/jecs/internal/core/system"
)

var (
	dataOnly        = []string{ComponentData}
	housekeeping    = []string{TagHousekeeping}
	withDestroy     = []string{ComponentData, TagDestroy}
	withUpdate      = []string{ComponentData, TagUpdate}
	withInsert      = []string{ComponentData, TagInsert}
	withEditing     = []string{ComponentData, TagEditingMode}
	withEditingDone = []string{ComponentData, TagEditingModeOff}
)

func itemOf(bag interfaces.ComponentBag) (*Item, error) {
	item, ok := models.BagValue[*Item](bag, ComponentData)
	if !ok || item == nil {
		return nil, ErrInvalidData
	}
	return item, nil
}

func flagsOf(c *system.Context) (*Flags, error) { return sharedFlags(c.Engine()) }

func stateOf(c *system.Context) (*State, error) { return sharedState(c.Engine()) }

func sharedFlags(e *system.Engine) (*Flags, error) {
	f, ok := system.Resource[*Flags](e, resourceFlags)
	if !ok {
		return nil, fmt.Errorf("%s: %w", resourceFlags, ErrMissingState)
	}
	return f, nil
}

func sharedState(e *system.Engine) (*State, error) {
	s, ok := system.Resource[*State](e, resourceState)
	if !ok {
		return nil, fmt.Errorf("%s: %w", resourceState, ErrMissingState)
	}
	return s, nil
}

// registerSystems installs the pipeline. The order is load-bearing: broadcasts
// run before destruction, destruction before counting, and the view is only
// touched after think has classified every item.
func (a *App) registerSystems() error {
	steps := []system.System{
		{Name: "mark-all-todos-as-complete", Signature: dataOnly, Handler: a.markAll},
		{Name: "destroy-completed-todos", Signature: dataOnly, Handler: a.destroyCompleted},
		{Name: "controller-destroy", Signature: withDestroy, Handler: a.controllerDestroy},
		{Name: "housekeeping-resets", Signature: housekeeping, Handler: a.housekeepingResets},
		{Name: "counting", Signature: dataOnly, Handler: a.counting},
		{Name: "editing-mode-on", Signature: withEditing, Handler: a.editingModeOn},
		{Name: "editing-mode-off", Signature: withEditingDone, Handler: a.editingModeOff},
		{Name: "think-todoitem", Signature: dataOnly, Handler: a.think},
		{Name: "controller-update-todoitem", Signature: withUpdate, Handler: a.controllerUpdate},
		{Name: "controller-insert-todoitem", Signature: withInsert, Handler: a.controllerInsert},
		{Name: "apply-filter", Signature: dataOnly, Handler: a.applyFilter},
		{Name: "render-footer", Signature: housekeeping, Handler: a.renderFooter},
		{Name: "reset-gather-for-save", Signature: housekeeping, Handler: a.resetGatherForSave},
		{Name: "gather-todos-for-save", Signature: dataOnly, Handler: a.gatherForSave},
		{Name: "save", Signature: housekeeping, Handler: a.save},
		{Name: "reset-todos", Signature: housekeeping, Handler: a.resetTodos},
		{Name: "gather-todos", Signature: dataOnly, Handler: a.gatherTodos},
		{Name: "dump", Signature: housekeeping, Handler: a.dump},
	}
	for _, s := range steps {
		if err := a.engine.System(s.Name, s.Signature, s.Handler); err != nil {
			return fmt.Errorf("register %s: %w", s.Name, err)
		}
	}
	return nil
}

func (a *App) markAll(c *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	flags, err := flagsOf(c)
	if err != nil {
		return err
	}
	if !flags.MarkAll.Active() {
		return nil
	}
	state, ok := flags.MarkAll.State()
	if !ok {
		return nil
	}
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	item.Completed = state
	return e.Tag(TagUpdate)
}

func (a *App) destroyCompleted(c *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	flags, err := flagsOf(c)
	if err != nil {
		return err
	}
	if !flags.DestroyCompleted {
		return nil
	}
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	if item.Completed {
		return e.Tag(TagDestroy)
	}
	return nil
}

func (a *App) controllerDestroy(c *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.view.RemoveRow(item.ID)
	c.Engine().RemoveEntity(e.Name())
	c.Logger().Debug("todo destroyed", log.String("id", item.ID))
	return nil
}

func (a *App) housekeepingResets(c *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	flags, err := flagsOf(c)
	if err != nil {
		return err
	}
	state, err := stateOf(c)
	if err != nil {
		return err
	}
	flags.DestroyCompleted = false
	flags.MarkAll.Reset()
	state.TodoCount = 0
	state.ActiveTodoCount = 0
	return nil
}

func (a *App) counting(c *system.Context, _ *models.Entity, bag interfaces.ComponentBag) error {
	state, err := stateOf(c)
	if err != nil {
		return err
	}
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	state.TodoCount++
	if !item.Completed {
		state.ActiveTodoCount++
	}
	return nil
}

func (a *App) editingModeOn(_ *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.view.BeginEdit(item.ID, item.Title)
	e.DeleteComponent(TagEditingMode)
	return nil
}

func (a *App) editingModeOff(c *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	res, ok := models.BagValue[EditResult](bag, TagEditingModeOff)
	if !ok {
		// a bare tag only leaves editing mode
		res.Aborted = true
	}
	switch value := strings.TrimSpace(res.Value); {
	case res.Aborted:
	case value == "":
		if err := e.Tag(TagDestroy); err != nil {
			return err
		}
	default:
		item.Title = value
	}
	a.view.EndEdit(item.ID)
	e.DeleteComponent(TagEditingModeOff)
	c.Logger().Debug("edit finished", log.String("id", item.ID), log.Bool("aborted", res.Aborted))
	return nil
}

func (a *App) think(_ *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	if a.view.HasRow(item.ID) {
		return e.Tag(TagUpdate)
	}
	return e.Tag(TagInsert)
}

func (a *App) controllerUpdate(_ *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.view.UpdateRow(*item)
	e.DeleteComponent(TagUpdate)
	return nil
}

func (a *App) controllerInsert(c *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.view.InsertRow(*item)
	e.DeleteComponent(TagInsert)
	c.Logger().Debug("todo inserted", log.String("id", item.ID), log.String("title", item.Title))
	return nil
}

func (a *App) applyFilter(c *system.Context, _ *models.Entity, bag interfaces.ComponentBag) error {
	state, err := stateOf(c)
	if err != nil {
		return err
	}
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.view.SetVisible(item.ID, state.Filter.Shows(item.Completed))
	return nil
}

func (a *App) renderFooter(c *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	state, err := stateOf(c)
	if err != nil {
		return err
	}
	a.view.RenderFooter(footerFor(*state))
	return nil
}

func footerFor(state State) Footer {
	return Footer{
		Visible:         state.TodoCount > 0,
		ActiveTodoCount: state.ActiveTodoCount,
		ActiveTodoWord:  Pluralize(state.ActiveTodoCount, defaultFooterItemWord),
		CompletedTodos:  state.CompletedCount(),
		Filter:          state.Filter,
	}
}

func (a *App) resetGatherForSave(_ *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	a.persist.reset()
	return nil
}

func (a *App) gatherForSave(_ *system.Context, _ *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.persist.gather(*item)
	return nil
}

func (a *App) save(c *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	return a.persist.save(c.Context())
}

func (a *App) resetTodos(_ *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	a.debug.reset()
	return nil
}

func (a *App) gatherTodos(_ *system.Context, e *models.Entity, bag interfaces.ComponentBag) error {
	item, err := itemOf(bag)
	if err != nil {
		return err
	}
	a.debug.gather(e, *item)
	return nil
}

func (a *App) dump(c *system.Context, _ *models.Entity, _ interfaces.ComponentBag) error {
	flags, err := flagsOf(c)
	if err != nil {
		return err
	}
	state, err := stateOf(c)
	if err != nil {
		return err
	}
	return a.debug.dump(*state, *flags)
}

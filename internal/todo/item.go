package todo

// Component names used by the todo systems. Everything except data is a tag
// whose presence is the signal; the consuming system removes it.
const (
	ComponentData         = "data"
	TagInsert             = "insert"
	TagUpdate             = "update"
	TagDestroy            = "destroy"
	TagEditingMode        = "editingmode"
	TagEditingModeOff     = "editingmode-off"
	TagHousekeeping       = "housekeeping"
	entityPrefix          = "todoitem-"
	SingleStepEntity      = "single-step"
	resourceFlags         = "todo.flags"
	resourceState         = "todo.state"
	defaultStorageKey     = "todos-oo"
	defaultFooterItemWord = "item"
)

// Item is the data component of a todo entity.
type Item struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	ID        string `json:"id"`
}

// EntityName returns the registry key of the todo with the given id.
func EntityName(id string) string {
	return entityPrefix + id
}

// EditResult is carried by the editingmode-off tag: the text the user left
// in the edit field, or Aborted when editing was cancelled.
type EditResult struct {
	Value   string
	Aborted bool
}

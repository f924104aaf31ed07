package todo

// Footer is what the footer renderer shows.
type Footer struct {
	Visible         bool   `json:"visible"`
	ActiveTodoCount int    `json:"activeTodoCount"`
	ActiveTodoWord  string `json:"activeTodoWord"`
	CompletedTodos  int    `json:"completedTodos"`
	Filter          Filter `json:"filter"`
}

// View is the surface the rendering systems draw on. Rows are keyed by todo id.
type View interface {
	HasRow(id string) bool
	InsertRow(item Item)
	UpdateRow(item Item)
	RemoveRow(id string)
	SetVisible(id string, visible bool)
	BeginEdit(id, title string)
	EndEdit(id string)
	RenderFooter(f Footer)
}

// Row is one rendered todo.
type Row struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Visible   bool   `json:"visible"`
	Editing   bool   `json:"editing"`
	Input     string `json:"input,omitempty"`
}

// MemoryView keeps rows in insertion order. It backs the tests, the REPL and
// the websocket snapshots.
type MemoryView struct {
	rows   []*Row
	footer Footer
}

var _ View = (*MemoryView)(nil)

func NewMemoryView() *MemoryView {
	return &MemoryView{}
}

func (v *MemoryView) row(id string) (*Row, int) {
	for i, r := range v.rows {
		if r.ID == id {
			return r, i
		}
	}
	return nil, -1
}

func (v *MemoryView) HasRow(id string) bool {
	_, i := v.row(id)
	return i >= 0
}

func (v *MemoryView) InsertRow(item Item) {
	v.rows = append(v.rows, &Row{
		ID:        item.ID,
		Title:     item.Title,
		Completed: item.Completed,
		Visible:   true,
	})
}

func (v *MemoryView) UpdateRow(item Item) {
	if r, _ := v.row(item.ID); r != nil {
		r.Title = item.Title
		r.Completed = item.Completed
	}
}

func (v *MemoryView) RemoveRow(id string) {
	if _, i := v.row(id); i >= 0 {
		v.rows = append(v.rows[:i], v.rows[i+1:]...)
	}
}

func (v *MemoryView) SetVisible(id string, visible bool) {
	if r, _ := v.row(id); r != nil {
		r.Visible = visible
	}
}

func (v *MemoryView) BeginEdit(id, title string) {
	if r, _ := v.row(id); r != nil {
		r.Editing = true
		r.Input = title
	}
}

func (v *MemoryView) EndEdit(id string) {
	if r, _ := v.row(id); r != nil {
		r.Editing = false
		r.Input = ""
	}
}

func (v *MemoryView) RenderFooter(f Footer) {
	v.footer = f
}

// Rows returns copies of the rows in display order.
func (v *MemoryView) Rows() []Row {
	out := make([]Row, 0, len(v.rows))
	for _, r := range v.rows {
		out = append(out, *r)
	}
	return out
}

// VisibleRows returns the rows the current filter shows.
func (v *MemoryView) VisibleRows() []Row {
	out := make([]Row, 0, len(v.rows))
	for _, r := range v.rows {
		if r.Visible {
			out = append(out, *r)
		}
	}
	return out
}

// Footer returns the last rendered footer.
func (v *MemoryView) Footer() Footer {
	return v.footer
}

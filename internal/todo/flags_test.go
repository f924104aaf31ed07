package todo

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for _, s := range []string{"all", "active", "completed"} {
		f, err := ParseFilter(s)
		require.NoError(t, err)
		assert.Equal(t, Filter(s), f)
	}
	_, err := ParseFilter("done")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestFilterShows(t *testing.T) {
	assert.True(t, FilterAll.Shows(true))
	assert.True(t, FilterAll.Shows(false))
	assert.True(t, FilterActive.Shows(false))
	assert.False(t, FilterActive.Shows(true))
	assert.True(t, FilterCompleted.Shows(true))
	assert.False(t, FilterCompleted.Shows(false))
}

func TestMarkAll(t *testing.T) {
	var m MarkAll
	_, ok := m.State()
	assert.False(t, ok)
	assert.False(t, m.Active())

	m.Set(false)
	state, ok := m.State()
	assert.True(t, ok)
	assert.False(t, state)
	assert.True(t, m.Active())

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"active":true,"state":false}`, string(raw))

	m.Reset()
	_, ok = m.State()
	assert.False(t, ok)
	assert.False(t, m.Active())
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "items", Pluralize(0, "item"))
	assert.Equal(t, "item", Pluralize(1, "item"))
	assert.Equal(t, "items", Pluralize(2, "item"))
}

func TestRender(t *testing.T) {
	rows := []Row{
		{ID: "1", Title: "a", Completed: true, Visible: true},
		{ID: "2", Title: "b", Visible: false},
		{ID: "3", Title: "c", Visible: true, Editing: true},
	}
	footer := Footer{Visible: true, ActiveTodoCount: 1, ActiveTodoWord: "item", CompletedTodos: 1, Filter: FilterActive}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rows, footer))
	assert.Equal(t, "1. [x] a\n3. [ ] c  (editing)\n1 item left  All [Active] Completed  clear completed (1)\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, nil, Footer{}))
	assert.Empty(t, buf.String())
}

package todo

import (
	"io"
	"text/template"
)

var (
	rowsTemplate = template.Must(template.New("todos").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		Parse(`{{range $i, $r := .}}{{if $r.Visible}}{{inc $i}}. [{{if $r.Completed}}x{{else}} {{end}}] {{$r.Title}}{{if $r.Editing}}  (editing){{end}}
{{end}}{{end}}`))

	footerTemplate = template.Must(template.New("footer").Parse(
		`{{if .Visible}}{{.ActiveTodoCount}} {{.ActiveTodoWord}} left  ` +
			`{{if eq .Filter "all"}}[All]{{else}}All{{end}} ` +
			`{{if eq .Filter "active"}}[Active]{{else}}Active{{end}} ` +
			`{{if eq .Filter "completed"}}[Completed]{{else}}Completed{{end}}` +
			`{{if .CompletedTodos}}  clear completed ({{.CompletedTodos}}){{end}}
{{end}}`))
)

// Pluralize appends an s to word unless count is one.
func Pluralize(count int, word string) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Render writes rows and footer as plain text. Row numbers count every row,
// hidden ones included, so they stay stable across filters.
func Render(w io.Writer, rows []Row, footer Footer) error {
	if err := rowsTemplate.Execute(w, rows); err != nil {
		return err
	}
	return footerTemplate.Execute(w, footer)
}

package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"folio/internal/domain/record"
)

// timestampLayout matches the long locale form the site displayed.
const timestampLayout = "Monday, January 2, 2006, 3:04:05 PM"

// Stamp formats a record timestamp for display.
func Stamp(t time.Time) string {
	return t.Format(timestampLayout)
}

var funcs = template.FuncMap{
	"stamp": Stamp,
}

// Template renders a full collection view from an already-sorted record
// list. All user-entered text flows through html/template escaping.
type Template interface {
	Render(records []record.Record) (string, error)
}

const journalTmpl = `{{if .Records}}{{range .Records}}<div class="journal-entry">
  <h3>{{.Title}}</h3>
  <p>{{.Body}}</p>
  <small>{{stamp .CreatedAt}}</small>
</div>
{{end}}{{else}}<div class="empty-state">No journal entries yet. Click + to add your first entry.</div>
{{end}}`

const projectTmpl = `{{if .Records}}{{range .Records}}<div class="project-entry">
  <h3>{{.Title}}</h3>
  <p>{{.Body}}</p>
{{- if .Attachments}}
  <ul class="files-list">
{{- range .Attachments}}
    <li>{{.Name}}</li>
{{- end}}
  </ul>
{{- end}}
  <small>Added on: {{stamp .CreatedAt}}</small>
</div>
{{end}}{{else}}<div class="empty-state">No projects yet. Click + to add your first project.</div>
{{end}}`

type listTemplate struct {
	t *template.Template
}

func (lt *listTemplate) Render(records []record.Record) (string, error) {
	var b strings.Builder
	data := struct {
		Records []record.Record
	}{Records: records}
	if err := lt.t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render collection: %w", err)
	}
	return b.String(), nil
}

// Journal returns the journal entries view.
func Journal() Template {
	return &listTemplate{t: template.Must(template.New("journal").Funcs(funcs).Parse(journalTmpl))}
}

// Project returns the projects view.
func Project() Template {
	return &listTemplate{t: template.Must(template.New("project").Funcs(funcs).Parse(projectTmpl))}
}

// AboutFragment wraps the about text in a paragraph, escaped.
func AboutFragment(text string) string {
	return "<p>" + template.HTMLEscapeString(text) + "</p>"
}

// CVFragment escapes the CV text and turns line breaks into <br>,
// the way the site formatted it.
func CVFragment(text string) string {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

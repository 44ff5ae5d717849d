package csvcodec

import (
	"html/template"
	"io"
)

var previewTable = template.Must(template.New("preview").Parse(
	`<table class="csv-preview"><thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range $row := .Rows}}<tr>{{range $.Headers}}<td>{{$row.Get .}}</td>{{end}}</tr>{{end}}</tbody></table>`,
))

// WriteHTML renders the table as an escaped HTML table.
func (t Table) WriteHTML(w io.Writer) error {
	return previewTable.Execute(w, t)
}

// Package view shapes filtered rows into table records and chart series, and owns the
// lifecycle of the chart instance.
package view

import (
	"html/template"
	"io"

	"github.com/kittclouds/atmkit/pkg/dataset"
)

// NoResults is the text of the placeholder row shown for an empty selection.
const NoResults = "No matching results"

// Cell is one rendered table cell.
type Cell struct {
	Column ColumnID `json:"column"`
	Text   string   `json:"text"`
	Hidden bool     `json:"hidden,omitempty"`
}

// TableRow is either a data row or the placeholder row.
type TableRow struct {
	Cells       []Cell `json:"cells,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Text        string `json:"text,omitempty"`
	ColSpan     int    `json:"colSpan,omitempty"`
}

// Table is the display form of a row sequence. It always has at least one row.
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// BuildTable produces one TableRow per row, in order, with the current visibility flags
// applied. An empty sequence yields a single placeholder row.
func BuildTable(rows []*dataset.Row, cols *Columns) Table {
	t := Table{Columns: cols.List()}
	if len(rows) == 0 {
		t.Rows = []TableRow{{Placeholder: true, Text: NoResults, ColSpan: cols.Len()}}
		return t
	}

	t.Rows = make([]TableRow, 0, len(rows))
	for _, r := range rows {
		cells := make([]Cell, 0, len(t.Columns))
		for _, col := range t.Columns {
			cells = append(cells, Cell{
				Column: col.ID,
				Text:   col.Value(r),
				Hidden: !cols.Visible(col.ID),
			})
		}
		t.Rows = append(t.Rows, TableRow{Cells: cells})
	}
	return t
}

var tableTmpl = template.Must(template.New("tbody").Parse(
	`{{range .}}{{if .Placeholder}}<tr class="placeholder"><td colspan="{{.ColSpan}}" style="text-align:center;">{{.Text}}</td></tr>
{{else}}<tr>{{range .Cells}}<td data-col="{{.Column}}"{{if .Hidden}} style="display:none"{{end}}>{{range .Segments}}{{if .Match}}<mark>{{.Text}}</mark>{{else}}{{.Text}}{{end}}{{end}}</td>{{end}}</tr>
{{end}}{{end}}`))

var headTmpl = template.Must(template.New("thead").Parse(
	`<tr>{{range .}}<th data-col="{{.ID}}"{{if .Hidden}} style="display:none"{{end}}>{{.Label}}</th>{{end}}</tr>`))

type htmlCell struct {
	Column   ColumnID
	Hidden   bool
	Segments []Segment
}

type htmlRow struct {
	Placeholder bool
	Text        string
	ColSpan     int
	Cells       []htmlCell
}

// RenderBody writes the <tr> markup for t. Cell text is escaped; h may be nil.
func RenderBody(w io.Writer, t Table, h *Highlighter) error {
	rows := make([]htmlRow, len(t.Rows))
	for i, r := range t.Rows {
		hr := htmlRow{Placeholder: r.Placeholder, Text: r.Text, ColSpan: r.ColSpan}
		for _, c := range r.Cells {
			hr.Cells = append(hr.Cells, htmlCell{Column: c.Column, Hidden: c.Hidden, Segments: h.Segments(c.Text)})
		}
		rows[i] = hr
	}
	return tableTmpl.Execute(w, rows)
}

// RenderHead writes the header row for the configured columns.
func RenderHead(w io.Writer, cols *Columns) error {
	type th struct {
		ID     ColumnID
		Label  string
		Hidden bool
	}
	var ths []th
	for _, c := range cols.List() {
		ths = append(ths, th{ID: c.ID, Label: c.Label, Hidden: !cols.Visible(c.ID)})
	}
	return headTmpl.Execute(w, ths)
}

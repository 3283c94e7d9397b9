package tabular

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render pretty-prints up to limit rows to w (limit <= 0 means all).
func (t Table) Render(w io.Writer, limit int) {
	pt := table.NewWriter()
	pt.SetStyle(table.StyleRounded)
	pt.SetOutputMirror(w)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	pt.AppendHeader(header)

	for i, row := range t.Rows {
		if limit > 0 && i >= limit {
			break
		}
		prow := make(table.Row, len(row))
		for j, cell := range row {
			prow[j] = cell
		}
		pt.AppendRow(prow)
	}
	pt.Render()
}

package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a workbook, treating the first row
// as the header.
func ReadXLSX(raw []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, nil
	}

	t := Table{Columns: rows[0]}
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells, overlong rows do happen
		// when data spills past the header
		for len(row) > len(t.Columns) {
			t.Columns = append(t.Columns, fmt.Sprintf("field_%d", len(t.Columns)+1))
		}
		t.Rows = append(t.Rows, row)
	}
	padRows(&t)
	return t, nil
}

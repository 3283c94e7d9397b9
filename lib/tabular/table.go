// Package tabular holds parsed open-data files as ordered columns and
// rows and knows how to stack differently-shaped tables together.
package tabular

// Missing marks a cell that had no value in its source file.
const Missing = ""

type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) NumRows() int {
	return len(t.Rows)
}

func (t Table) NumColumns() int {
	return len(t.Columns)
}

func (t Table) IsEmpty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// index of a column name, -1 if absent
func (t Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Concat stacks tables in the order given. Columns are aligned by name:
// the result's column set is the union of all inputs' columns in
// first-seen order, and a row from a table lacking some column gets
// Missing in that cell. Rows keep their input order and are reindexed
// contiguously, there is no schema validation beyond name alignment.
func Concat(tables []Table) Table {
	var columns []string
	seen := map[string]bool{}
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	if len(columns) == 0 {
		return Table{}
	}

	totalRows := 0
	for _, t := range tables {
		totalRows += len(t.Rows)
	}

	out := Table{
		Columns: columns,
		Rows:    make([][]string, 0, totalRows),
	}
	for _, t := range tables {
		// source column index for each output column, -1 pads Missing
		mapping := make([]int, len(columns))
		for i, c := range columns {
			mapping[i] = t.columnIndex(c)
		}

		for _, row := range t.Rows {
			outRow := make([]string, len(columns))
			for i, src := range mapping {
				if src < 0 || src >= len(row) {
					outRow[i] = Missing
					continue
				}
				outRow[i] = row[src]
			}
			out.Rows = append(out.Rows, outRow)
		}
	}
	return out
}

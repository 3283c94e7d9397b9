package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"ridership-backend/lib/charsetutil"
)

// ReadCSV parses delimited text with a header row. The charset is
// sniffed from the leading bytes and the whole payload decoded with it
// before parsing. Ragged rows are tolerated: short rows are padded with
// Missing and overlong rows grow the column set with field_N names,
// since yearly exports are not above shifting shape mid-file.
func ReadCSV(raw []byte) (Table, error) {
	charset := charsetutil.Detect(raw)

	reader := csv.NewReader(charsetutil.DecodeReader(bytes.NewReader(raw), charset))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}

	t := Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv row %d: %w", len(t.Rows)+1, err)
		}

		for len(record) > len(t.Columns) {
			t.Columns = append(t.Columns, fmt.Sprintf("field_%d", len(t.Columns)+1))
		}
		t.Rows = append(t.Rows, record)
	}
	padRows(&t)
	return t, nil
}

// WriteCSV writes the table as utf-8 csv with a header row.
func (t Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func padRows(t *Table) {
	for i, row := range t.Rows {
		for len(row) < len(t.Columns) {
			row = append(row, Missing)
		}
		t.Rows[i] = row
	}
}

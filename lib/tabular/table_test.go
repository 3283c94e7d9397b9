package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestConcatColumnUnion(t *testing.T) {
	a := Table{
		Columns: []string{"trip_id", "duration"},
		Rows: [][]string{
			{"1", "300"},
			{"2", "720"},
		},
	}
	b := Table{
		Columns: []string{"duration", "model"},
		Rows: [][]string{
			{"60", "EFIT"},
		},
	}

	out := Concat([]Table{a, b})
	require.Equal(t, []string{"trip_id", "duration", "model"}, out.Columns)
	require.Equal(t, 3, out.NumRows())
	require.Equal(t, []string{"1", "300", Missing}, out.Rows[0])
	require.Equal(t, []string{"2", "720", Missing}, out.Rows[1])
	require.Equal(t, []string{Missing, "60", "EFIT"}, out.Rows[2])
}

func TestConcatPreservesOrderAndCount(t *testing.T) {
	var tables []Table
	total := 0
	for i := 0; i < 4; i++ {
		tbl := Table{Columns: []string{"id"}}
		for j := 0; j < i+1; j++ {
			tbl.Rows = append(tbl.Rows, []string{string(rune('a' + i))})
		}
		total += i + 1
		tables = append(tables, tbl)
	}

	out := Concat(tables)
	require.Equal(t, total, out.NumRows())
	require.Equal(t, "a", out.Rows[0][0])
	require.Equal(t, "d", out.Rows[total-1][0])
}

func TestConcatEmpty(t *testing.T) {
	out := Concat(nil)
	require.True(t, out.IsEmpty())
	require.Equal(t, 0, out.NumRows())
	require.Equal(t, 0, out.NumColumns())
}

func TestReadCSV(t *testing.T) {
	raw := []byte("trip_id,start_station\n10,Union Station\n11,King St W\n")

	tbl, err := ReadCSV(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"trip_id", "start_station"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, "King St W", tbl.Rows[1][1])
}

func TestReadCSVRaggedRows(t *testing.T) {
	raw := []byte("a,b\n1\n2,3,4\n")

	tbl, err := ReadCSV(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "field_3"}, tbl.Columns)
	require.Equal(t, []string{"1", Missing, Missing}, tbl.Rows[0])
	require.Equal(t, []string{"2", "3", "4"}, tbl.Rows[1])
}

func TestReadCSVWindows1252(t *testing.T) {
	text := "station\nCôte-Sainte-Catherine / Décarie\n"
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tbl, err := ReadCSV(raw)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())
	require.Equal(t, "Côte-Sainte-Catherine / Décarie", tbl.Rows[0][0])
}

func TestReadCSVEmptyPayload(t *testing.T) {
	_, err := ReadCSV(nil)
	require.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl := Table{
		Columns: []string{"trip_id", "duration"},
		Rows:    [][]string{{"1", "300"}, {"2", "720"}},
	}

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	back, err := ReadCSV(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, tbl.Columns, back.Columns)
	require.Equal(t, tbl.Rows, back.Rows)
}

func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	raw := xlsxBytes(t, [][]any{
		{"trip_id", "duration"},
		{"1", "300"},
		{"2", "720"},
	})

	tbl, err := ReadXLSX(raw)
	require.NoError(t, err)
	require.Equal(t, []string{"trip_id", "duration"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, "720", tbl.Rows[1][1])
}

func TestReadXLSXNotAWorkbook(t *testing.T) {
	_, err := ReadXLSX([]byte("definitely not a zip"))
	require.Error(t, err)
}

func TestRenderDoesNotPanic(t *testing.T) {
	tbl := Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"3", "4"}},
	}
	var buf bytes.Buffer
	tbl.Render(&buf, 1)
	require.NotEmpty(t, buf.String())
}

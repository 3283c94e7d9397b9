package dataset

import (
	"archive/zip"
	"bytes"
	"io"
	"strconv"
	"strings"

	"ridership-backend/lib/tabular"
)

// ExpandArchive parses every zip entry whose name ends with a supported
// extension and contains the year as a substring. Other entries are
// skipped without error, and tables come back in archive enumeration
// order. A corrupt archive or an unreadable eligible entry is a
// ParseError.
func ExpandArchive(zipBytes []byte, year int) ([]tabular.Table, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, &ParseError{Source: "archive", Format: FormatZIP, Err: err}
	}

	yearStr := strconv.Itoa(year)

	var tables []tabular.Table
	for _, entry := range reader.File {
		format := FormatFromPath(entry.Name)
		if format != FormatCSV && format != FormatXLSX {
			continue
		}
		if !strings.Contains(entry.Name, yearStr) {
			continue
		}

		f, err := entry.Open()
		if err != nil {
			return nil, &ParseError{Source: entry.Name, Format: format, Err: err}
		}
		raw, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, &ParseError{Source: entry.Name, Format: format, Err: err}
		}

		t, err := ParsePayload(raw, entry.Name, format)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

package dataset

import (
	"fmt"

	"ridership-backend/lib/tabular"
)

// ParseError means one payload could not be parsed under its declared
// or inferred format. It is scoped to that payload, the build carries
// on without it.
type ParseError struct {
	Source string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %s", e.Source, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParsePayload parses raw bytes from source (a url or archive entry
// name) under the given format. Only csv and xlsx payloads produce a
// table, zip payloads go through ExpandArchive instead.
func ParsePayload(raw []byte, source string, format Format) (tabular.Table, error) {
	switch format {
	case FormatCSV:
		t, err := tabular.ReadCSV(raw)
		if err != nil {
			return tabular.Table{}, &ParseError{Source: source, Format: format, Err: err}
		}
		return t, nil
	case FormatXLSX:
		t, err := tabular.ReadXLSX(raw)
		if err != nil {
			return tabular.Table{}, &ParseError{Source: source, Format: format, Err: err}
		}
		return t, nil
	}
	return tabular.Table{}, &ParseError{
		Source: source,
		Format: format,
		Err:    fmt.Errorf("format is not directly parseable"),
	}
}

// Package dataset builds one combined table per year from a CKAN
// portal's heterogeneous resource files.
package dataset

import "strings"

// Format is the closed set of payload formats the pipeline understands.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
	FormatZIP
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatZIP:
		return "zip"
	}
	return "unknown"
}

// FormatFromString maps a catalog's declared format field, case
// insensitively. Anything unrecognized is FormatUnknown, which the
// builder silently skips.
func FormatFromString(s string) Format {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV
	case "xlsx":
		return FormatXLSX
	case "zip":
		return FormatZIP
	}
	return FormatUnknown
}

// FormatFromPath maps a filename by extension, case-sensitive, the way
// archive entries are stored.
func FormatFromPath(name string) Format {
	switch {
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV
	case strings.HasSuffix(name, ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(name, ".zip"):
		return FormatZIP
	}
	return FormatUnknown
}

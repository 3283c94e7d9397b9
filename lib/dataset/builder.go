package dataset

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"ridership-backend/lib/ckan"
	"ridership-backend/lib/tabular"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("dataset")

// ResourceFailure records one resource that could not contribute to a
// build. Failures are isolated per resource and never abort the build.
type ResourceFailure struct {
	URL string
	Err error
}

// Builder drives the whole pipeline: catalog fetch, per-year filter,
// resource download, format dispatch, concatenation.
type Builder struct {
	Client *ckan.Client
}

func NewBuilder(packageURL string) *Builder {
	return &Builder{Client: ckan.NewClient(packageURL)}
}

// eligible applies the url-side filter: the lowercased url must contain
// the year, must not contain "readme", and must end with a supported
// extension. Note this is independent of the declared format field used
// for dispatch, the two can disagree and the catalog's word wins at
// parse time.
func eligible(url string, yearStr string) bool {
	urlLower := strings.ToLower(url)
	if !strings.Contains(urlLower, yearStr) {
		return false
	}
	if strings.Contains(urlLower, "readme") {
		return false
	}
	return strings.HasSuffix(urlLower, ".zip") ||
		strings.HasSuffix(urlLower, ".xlsx") ||
		strings.HasSuffix(urlLower, ".csv")
}

// BuildYear fetches every eligible resource for the year and
// concatenates the parsed tables into one. Per-resource fetch and parse
// failures are reported in the second return value, only a catalog
// failure is returned as an error. Zero contributing resources yields
// an empty table, which is a valid result.
func (b *Builder) BuildYear(ctx context.Context, year int) (tabular.Table, []ResourceFailure, error) {
	ctx, span := tracer.Start(ctx, "builder:BuildYear")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	resources, err := b.Client.GetPackage(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch catalog")
		return tabular.Table{}, nil, err
	}

	yearStr := strconv.Itoa(year)

	var tables []tabular.Table
	var failures []ResourceFailure
	for _, resource := range resources {
		if !eligible(resource.URL, yearStr) {
			continue
		}

		raw, err := b.Client.Fetch(ctx, resource.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch resource", "url", resource.URL, "err", err)
			failures = append(failures, ResourceFailure{URL: resource.URL, Err: err})
			continue
		}

		switch FormatFromString(resource.Format) {
		case FormatZIP:
			expanded, err := ExpandArchive(raw, year)
			if err != nil {
				slog.ErrorContext(ctx, "failed to expand archive", "url", resource.URL, "err", err)
				failures = append(failures, ResourceFailure{URL: resource.URL, Err: err})
				continue
			}
			tables = append(tables, expanded...)
		case FormatXLSX:
			t, err := ParsePayload(raw, resource.URL, FormatXLSX)
			if err != nil {
				slog.ErrorContext(ctx, "failed to parse resource", "url", resource.URL, "err", err)
				failures = append(failures, ResourceFailure{URL: resource.URL, Err: err})
				continue
			}
			tables = append(tables, t)
		case FormatCSV:
			t, err := ParsePayload(raw, resource.URL, FormatCSV)
			if err != nil {
				slog.ErrorContext(ctx, "failed to parse resource", "url", resource.URL, "err", err)
				failures = append(failures, ResourceFailure{URL: resource.URL, Err: err})
				continue
			}
			tables = append(tables, t)
		default:
			slog.DebugContext(ctx, "skipping resource with unhandled format",
				"url", resource.URL, "format", resource.Format)
		}
	}

	if len(tables) == 0 {
		slog.InfoContext(ctx, "no data found for year", "year", year)
		return tabular.Table{}, failures, nil
	}

	out := tabular.Concat(tables)
	slog.InfoContext(ctx, "built yearly dataset",
		"year", year,
		"tables", len(tables),
		"rows", out.NumRows(),
		"failed_resources", len(failures),
	)
	return out, failures, nil
}

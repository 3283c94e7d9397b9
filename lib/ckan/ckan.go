// Package ckan fetches resource catalogs from CKAN-style open data
// portals (package_show endpoints).
package ckan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ridership-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ckan")

// Resource is one catalog entry, kept as the portal reported it.
type Resource struct {
	URL          string `json:"url"`
	Format       string `json:"format"`
	Name         string `json:"name"`
	LastModified string `json:"last_modified"`
}

// MetadataError means the catalog itself could not be fetched or
// understood. Nothing can be built without a resource list, so callers
// treat it as fatal.
type MetadataError struct {
	PackageURL string
	Err        error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("fetch catalog %s: %s", e.PackageURL, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

type Client struct {
	PackageURL string
	Http       *resty.Client
}

func NewClient(packageURL string) *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 15)
	telemetry.InstrumentResty(client, "ckan/http")

	return &Client{
		PackageURL: packageURL,
		Http:       client,
	}
}

type packageShowResponse struct {
	Success bool `json:"success"`
	Result  *struct {
		Resources []Resource `json:"resources"`
	} `json:"result"`
}

// GetPackage fetches the catalog and returns its resource list
// verbatim. Every failure mode (transport, bad json, success=false,
// missing resource list) comes back as a *MetadataError.
func (c *Client) GetPackage(ctx context.Context) ([]Resource, error) {
	ctx, span := tracer.Start(ctx, "client:GetPackage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.PackageURL)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch catalog")
		return nil, &MetadataError{PackageURL: c.PackageURL, Err: err}
	}

	var body packageShowResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse catalog json")
		return nil, &MetadataError{PackageURL: c.PackageURL, Err: err}
	}
	if !body.Success {
		span.SetStatus(codes.Error, "catalog reported success=false")
		return nil, &MetadataError{
			PackageURL: c.PackageURL,
			Err:        fmt.Errorf("portal reported success=false"),
		}
	}
	if body.Result == nil || body.Result.Resources == nil {
		span.SetStatus(codes.Error, "catalog missing resource list")
		return nil, &MetadataError{
			PackageURL: c.PackageURL,
			Err:        fmt.Errorf("response has no result.resources"),
		}
	}

	return body.Result.Resources, nil
}

// Fetch downloads one resource's bytes, honoring the same 15 second
// timeout as the catalog fetch. The body is opaque, content-type is
// not consulted.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch resource")
		return nil, err
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "resource returned error status")
		return nil, fmt.Errorf("GET %s: status %d", url, res.StatusCode())
	}
	return res.Body(), nil
}

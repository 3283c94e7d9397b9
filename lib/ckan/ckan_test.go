package ckan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridership-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGetPackage(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:ckan")
	defer cleanup()

	server := catalogServer(t, `{
		"success": true,
		"result": {
			"resources": [
				{"url": "https://example.com/bikeshare-2023.zip", "format": "ZIP"},
				{"url": "https://example.com/readme.csv", "format": "CSV"}
			]
		}
	}`)

	client := NewClient(server.URL)
	resources, err := client.GetPackage(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)
	require.Equal(t, "https://example.com/bikeshare-2023.zip", resources[0].URL)
	require.Equal(t, "ZIP", resources[0].Format)
}

func TestGetPackageFailures(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:ckan")
	defer cleanup()

	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>tidewall</html>`},
		{name: "success false", body: `{"success": false, "result": {"resources": []}}`},
		{name: "missing success", body: `{"result": {"resources": []}}`},
		{name: "missing resources", body: `{"success": true, "result": {}}`},
		{name: "missing result", body: `{"success": true}`},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			server := catalogServer(t, test.body)
			client := NewClient(server.URL)

			_, err := client.GetPackage(context.Background())
			require.Error(t, err)

			var metaErr *MetadataError
			require.ErrorAs(t, err, &metaErr)
		})
	}
}

func TestGetPackageUnreachable(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:ckan")
	defer cleanup()

	client := NewClient("http://127.0.0.1:1/package_show")
	_, err := client.GetPackage(context.Background())

	var metaErr *MetadataError
	require.ErrorAs(t, err, &metaErr)
}

func TestFetchErrorStatus(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:ckan")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.Fetch(context.Background(), server.URL+"/missing.csv")
	require.Error(t, err)
}

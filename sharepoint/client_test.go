package sharepoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	credentials := Credentials{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		ClientSecret: "s3cret",
	}

	c, _ := NewClient(context.Background(), credentials, "https://contoso.sharepoint.com/sites/finanzas", zerolog.Nop(),
		WithBaseURL(url),
		WithHTTPClient(http.DefaultClient))

	return c
}

func TestSiteID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com:/sites/finanzas", r.URL.Path)
		assert.Equal(t, "id", r.URL.Query().Get("$select"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "contoso.sharepoint.com,abc,def"})
	}))
	defer server.Close()

	c := testClient(server.URL)

	id, err := c.SiteID(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "contoso.sharepoint.com,abc,def", id)
}

func TestSiteIDIsCached(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "site-1"})
	}))
	defer server.Close()

	c := testClient(server.URL)

	c.SiteID(context.Background())
	c.SiteID(context.Background())

	assert.Equal(t, 1, requests)
}

func TestListID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/lists", r.URL.Path)
		assert.Equal(t, "displayName eq 'Facturas de Venta'", r.URL.Query().Get("$filter"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{"id": "list-1"}},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.siteID = "site-1"

	id, err := c.ListID(context.Background(), "Facturas de Venta")

	require.NoError(t, err)
	assert.Equal(t, "list-1", id)
}

func TestListIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.siteID = "site-1"

	_, err := c.ListID(context.Background(), "No Existe")

	assert.ErrorContains(t, err, "not found")
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Credentials{}, "https://contoso.sharepoint.com/sites/finanzas", zerolog.Nop())

	assert.Error(t, err)
}

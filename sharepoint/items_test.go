package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(c *Client, list string) *Client {
	c.siteID = "site-1"
	c.lists[list] = "list-1"
	return c
}

func TestCreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sites/site-1/lists/list-1/items", r.URL.Path)

		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		fields := body["fields"].(map[string]any)
		assert.Equal(t, "4321", fields["Title"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "17"})
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Facturas")

	id, err := c.CreateItem(context.Background(), "Facturas", Fields{"Title": "4321"})

	require.NoError(t, err)
	assert.Equal(t, "17", id)
}

func TestCreateItemIDFromExpandedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"fields": map[string]any{"id": 17},
		})
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Facturas")

	id, err := c.CreateItem(context.Background(), "Facturas", Fields{"Title": "4321"})

	require.NoError(t, err)
	assert.Equal(t, "17", id)
}

func TestCreateItemRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Facturas")

	_, err := c.CreateItem(context.Background(), "Facturas", Fields{"Title": "4321"})

	assert.Error(t, err)
}

func TestCreateItemWithLookup(t *testing.T) {
	accepted := "FacturadeVentaLookupId"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		fields := body["fields"].(map[string]any)

		if _, ok := fields[accepted]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		assert.Equal(t, "17", fields[accepted])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "99"})
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Items Factura")

	candidates := []string{
		"Factura_x0020_de_x0020_VentaLookupId",
		"Factura_x0020_de_x0020_Venta",
		"FacturadeVentaLookupId",
	}

	id, err := c.CreateItemWithLookup(context.Background(), "Items Factura", candidates, "17", Fields{"Title": "FV-1001"})

	require.NoError(t, err)
	assert.Equal(t, "99", id)
}

func TestCreateItemWithLookupExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Items Factura")

	_, err := c.CreateItemWithLookup(context.Background(), "Items Factura", []string{"A", "B"}, "17", Fields{})

	assert.ErrorContains(t, err, "no lookup field variation accepted")
}

func TestItems(t *testing.T) {
	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("page") == "2" {
			json.NewEncoder(w).Encode(map[string]any{
				"value": []map[string]any{
					{"id": "2", "fields": map[string]any{"Title": "556"}},
				},
			})
			return
		}

		assert.Equal(t, "/sites/site-1/lists/list-1/items", r.URL.Path)
		assert.Equal(t, "fields", r.URL.Query().Get("$expand"))

		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"id": "1", "fields": map[string]any{"Title": "555"}},
			},
			"@odata.nextLink": fmt.Sprintf("%v/sites/site-1/lists/list-1/items?page=2", server.URL),
		})
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Pagos")

	items, err := c.Items(context.Background(), "Pagos")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "555", items[0].Fields["Title"])
	assert.Equal(t, "556", items[1].Fields["Title"])
}

func TestDeleteItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sites/site-1/lists/list-1/items/17", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Pagos")

	assert.NoError(t, c.DeleteItem(context.Background(), "Pagos", "17"))
}

func TestDeleteItemRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := resolved(testClient(server.URL), "Pagos")

	assert.Error(t, c.DeleteItem(context.Background(), "Pagos", "17"))
}

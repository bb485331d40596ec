package alegra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	c := NewClient("user@example.com", "token", zerolog.Nop(), WithBaseURL(url))

	c.rest.SetRetryWaitTime(10 * time.Millisecond)
	c.rest.SetRetryMaxWaitTime(10 * time.Millisecond)

	return c
}

func TestInvoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "user@example.com", user)
		assert.Equal(t, "token", password)

		assert.Equal(t, "/invoices", r.URL.Path)
		assert.Equal(t, "2026-03-15", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 4321, "status": "open", "numberTemplate": map[string]any{"fullNumber": "FV-1001"}},
		})
	}))
	defer server.Close()

	invoices, err := testClient(server.URL).Invoices(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, ID("4321"), invoices[0].ID)
	assert.Equal(t, "FV-1001", invoices[0].NumberTemplate.FullNumber)
}

func TestPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "DESC", r.URL.Query().Get("order_direction"))
		assert.Equal(t, "false", r.URL.Query().Get("metadata"))
		assert.Equal(t, "false", r.URL.Query().Get("includeUnconciliated"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "555", "amount": 250000},
		})
	}))
	defer server.Close()

	payments, err := testClient(server.URL).Payments(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, ID("555"), payments[0].ID)
}

func TestPaymentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Payment(context.Background(), "999")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetryOnRateLimit(t *testing.T) {
	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()

	_, err := testClient(server.URL).Invoices(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestItemsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("limit"))

		start := r.URL.Query().Get("start")

		page := []map[string]any{}
		if start == "0" {
			for i := 0; i < 30; i++ {
				page = append(page, map[string]any{"id": i, "name": "item"})
			}
		} else {
			assert.Equal(t, "30", start)
			page = append(page, map[string]any{"id": 30, "name": "last"})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	items, err := testClient(server.URL).Items(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 31)
	assert.Equal(t, "last", items[30].Name)
}

func TestAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		assert.Equal(t, "plain", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Activos"},
			{"id": 2, "idParent": 1, "name": "Caja"},
		})
	}))
	defer server.Close()

	accounts, err := testClient(server.URL).Accounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, ID("1"), accounts[1].IDParent)
}

func TestErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Invoices(context.Background(), time.Now())

	assert.Error(t, err)
}

package catalogapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seefood/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("https://catalog.example.com", 100, 1000)

	assert.NotNil(t, client)
	assert.Equal(t, 100, client.fetchLimit)
	assert.NotNil(t, client.http)
	assert.NotNil(t, client.rateLimiter)
}

func TestFetchCatalog_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		records := []domain.Product{
			{Barcode: "111", Description: "Almond Milk", Ingredients: "almonds, water"},
			{Barcode: "222", Description: "Oat Milk", Ingredients: "oats, water"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	products, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "111", products[0].Barcode)
	assert.Equal(t, "Almond Milk", products[0].Description)
}

func TestFetchCatalog_DropsRecordsWithoutBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		records := []domain.Product{
			{Barcode: "111", Description: "Almond Milk", Ingredients: "almonds, water"},
			{Barcode: "", Description: "Orphan Record", Ingredients: "mystery"},
			{Barcode: "222", Description: "Oat Milk", Ingredients: "oats, water"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	products, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEmpty(t, p.Barcode)
	}
}

func TestFetchCatalog_EmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	products, err := client.FetchCatalog(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetchCatalog_ServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	_, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	// Initial attempt plus three retries
	assert.Equal(t, int32(4), calls.Load())
}

func TestFetchCatalog_BadRequestDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	_, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchCatalog_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not an array"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 1000)
	_, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFetchCatalog_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 100, 1000)
	_, err := client.FetchCatalog(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

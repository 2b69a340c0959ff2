package board

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/orders"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
}

func TestClientSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/marketplace", r.URL.Path)
		_, _ = io.WriteString(w, `{"vendors":{"JuJu":{"name":"JuJu","key":"JuJu","items":{"JuJu-Puto-1":{"id":"JuJu-Puto-1","name":"Puto","priceCash":12.5,"pricePayday":null,"isAvailable":true,"isPreOrder":false}},"buyers":[]}},"lastUpdatedDate":"06/01/2025"}`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", WithTimeout(time.Second))
	require.NoError(t, err)

	snap, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "06/01/2025", snap.LastUpdatedDate)
	item := snap.Vendors["JuJu"].Items["JuJu-Puto-1"]
	assert.Equal(t, "₱12.50", item.PriceCash.Label())
	assert.False(t, item.PricePayday.Valid)
}

func TestClientPostSendsIdempotencyKey(t *testing.T) {
	var (
		gotKey  string
		gotBody orders.ClearInput
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/clear", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotKey = r.Header.Get(idempotencyKeyHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"message":"Vendor orders cleared successfully","count":2}`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	client.newKey = func() string { return "fixed-key" }

	resp, err := client.ClearOrders(context.Background(), orders.ClearInput{VendorKey: "JuJu"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-key", gotKey)
	assert.Equal(t, "JuJu", gotBody.VendorKey)
	require.NotNil(t, resp.Count)
	assert.EqualValues(t, 2, *resp.Count)
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Vendor not found","code":"NOT_FOUND"}`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.SaveItem(context.Background(), items.SaveInput{VendorKey: "Nope", Item: items.ItemInput{Name: "Puto"}})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Vendor not found", typed.Message())
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
	assert.Contains(t, err.Error(), "upstream down")
}

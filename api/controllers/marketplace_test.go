package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/pkg/config"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

func TestMarketplaceSnapshot(t *testing.T) {
	snapshot := &marketplace.Snapshot{
		Vendors: map[string]marketplace.Vendor{
			"JuJu": {
				Name: "JuJu",
				Key:  "JuJu",
				Items: map[string]marketplace.Item{
					"JuJu-Puto-1": {ID: "JuJu-Puto-1", Name: "Puto", PriceCash: types.NewPrice(decimal.NewFromInt(10)), IsAvailable: true},
				},
				Buyers: []marketplace.Order{},
			},
		},
		LastUpdatedDate: "06/01/2025",
	}
	rec := httptest.NewRecorder()
	MarketplaceSnapshot(stubMarketplaceService{snapshot: snapshot}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/marketplace", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{
		"vendors": {
			"JuJu": {
				"name": "JuJu",
				"key": "JuJu",
				"items": {
					"JuJu-Puto-1": {"id":"JuJu-Puto-1","name":"Puto","priceCash":10,"pricePayday":null,"isAvailable":true,"isPreOrder":false}
				},
				"buyers": []
			}
		},
		"lastUpdatedDate": "06/01/2025"
	}`, rec.Body.String())
}

func TestMarketplaceSnapshotFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	MarketplaceSnapshot(stubMarketplaceService{err: errors.New("db down")}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/marketplace", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, rec)["error"])
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": stubPinger{}, "redis": nil}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"db":"ok"}}`, rec.Body.String())
	assert.Equal(t, "dev", rec.Header().Get(envHeader))

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"db": stubPinger{err: errors.New("refused")}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(&config.Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.JSONEq(t, `{"status":"live"}`, rec.Body.String())
}

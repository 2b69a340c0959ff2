package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
)

type stubRegisterService struct {
	got    vendors.RegisterInput
	result *vendors.RegisterResult
	err    error
}

func (s *stubRegisterService) Register(ctx context.Context, input vendors.RegisterInput) (*vendors.RegisterResult, error) {
	s.got = input
	return s.result, s.err
}

type stubVendorService struct {
	deleted vendors.DeleteInput
	saved   vendors.SaveChangesInput
	err     error
}

func (s *stubVendorService) Delete(ctx context.Context, input vendors.DeleteInput) error {
	s.deleted = input
	return s.err
}

func (s *stubVendorService) SaveChanges(ctx context.Context, input vendors.SaveChangesInput) (*vendors.SaveChangesResult, error) {
	s.saved = input
	if s.err != nil {
		return nil, s.err
	}
	return &vendors.SaveChangesResult{Items: len(input.Items), Buyers: len(input.Buyers)}, nil
}

type stubItemService struct {
	saved   items.SaveInput
	deleted items.DeleteInput
	soldOut items.SoldOutInput
	updated int64
	err     error
}

func (s *stubItemService) Save(ctx context.Context, input items.SaveInput) (*models.Item, error) {
	s.saved = input
	if s.err != nil {
		return nil, s.err
	}
	id := input.Item.ID
	if id == "" {
		id = items.DeriveItemID(input.VendorKey, input.Item.Name, 1700000000000)
	}
	return &models.Item{ID: id, VendorID: input.VendorKey, Name: input.Item.Name}, nil
}

func (s *stubItemService) Delete(ctx context.Context, input items.DeleteInput) error {
	s.deleted = input
	return s.err
}

func (s *stubItemService) MarkSoldOut(ctx context.Context, input items.SoldOutInput) (int64, error) {
	s.soldOut = input
	return s.updated, s.err
}

type stubOrderService struct {
	placed  orders.PlaceInput
	cleared orders.ClearInput
	removed int64
	err     error
}

func (s *stubOrderService) Place(ctx context.Context, input orders.PlaceInput) (*models.Buyer, error) {
	s.placed = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.Buyer{ID: 1, VendorID: input.VendorKey}, nil
}

func (s *stubOrderService) Clear(ctx context.Context, input orders.ClearInput) (int64, error) {
	s.cleared = input
	return s.removed, s.err
}

type stubMarketplaceService struct {
	snapshot *marketplace.Snapshot
	err      error
}

func (s stubMarketplaceService) Snapshot(ctx context.Context) (*marketplace.Snapshot, error) {
	return s.snapshot, s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return payload
}

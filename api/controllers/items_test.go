package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

func TestItemSaveDerivesID(t *testing.T) {
	svc := &stubItemService{}
	rec := postJSON(t, ItemSave(svc, nil), `{"vendorKey":"AbCd","item":{"id":"","name":"Rice Cake!","priceCash":"15.00","pricePayday":null,"isAvailable":true,"isPreOrder":false}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Item saved successfully", body["message"])
	assert.Equal(t, "AbCd-RiceCake-1700000000000", body["itemId"])
	assert.Equal(t, "15", svc.saved.Item.PriceCash.Decimal.String())
	assert.False(t, svc.saved.Item.PricePayday.Valid)
}

func TestItemSaveRequiresName(t *testing.T) {
	svc := &stubItemService{}
	rec := postJSON(t, ItemSave(svc, nil), `{"vendorKey":"AbCd","item":{"priceCash":1}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Missing required fields.", body["error"])
	assert.Equal(t, map[string]any{"name": "is required"}, body["details"])
}

func TestItemSaveRejectsNegativePrice(t *testing.T) {
	rec := postJSON(t, ItemSave(&stubItemService{}, nil), `{"vendorKey":"AbCd","item":{"name":"Puto","priceCash":-1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemDelete(t *testing.T) {
	svc := &stubItemService{}
	rec := postJSON(t, ItemDelete(svc, nil), `{"vendorKey":"AbCd","itemId":"AbCd-Puto-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item deleted successfully", decodeBody(t, rec)["message"])
	assert.Equal(t, "AbCd-Puto-1", svc.deleted.ItemID)
}

func TestItemDeleteMissingFields(t *testing.T) {
	rec := postJSON(t, ItemDelete(&stubItemService{}, nil), `{"vendorKey":"AbCd"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing itemId or vendorKey", decodeBody(t, rec)["error"])
}

func TestItemsSoldOut(t *testing.T) {
	svc := &stubItemService{updated: 3}
	rec := postJSON(t, ItemsSoldOut(svc, nil), `{"vendorKey":"AbCd","activeTab":"preorder"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Vendor items marked as sold out successfully", body["message"])
	assert.EqualValues(t, 3, body["count"])
	assert.Equal(t, "preorder", svc.soldOut.ActiveTab)
}

func TestItemsSoldOutBadTab(t *testing.T) {
	svc := &stubItemService{err: pkgerrors.New(pkgerrors.CodeValidation, `activeTab must be "now" or "preorder"`)}
	rec := postJSON(t, ItemsSoldOut(svc, nil), `{"vendorKey":"AbCd","activeTab":"later"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `activeTab must be "now" or "preorder"`, decodeBody(t, rec)["error"])
}

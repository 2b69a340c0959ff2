package items

import (
	"fmt"
	"strings"

	"github.com/sosmarketplace/sos-board/pkg/db/models"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// Tab partitions the board into items sold now and pre-order items.
type Tab string

const (
	TabNow      Tab = "now"
	TabPreOrder Tab = "preorder"
)

// ParseTab accepts "now" or "preorder" in any case.
func ParseTab(value string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(value))) {
	case TabNow:
		return TabNow, nil
	case TabPreOrder:
		return TabPreOrder, nil
	}
	return "", fmt.Errorf("unknown tab %q", value)
}

// PreOrder reports the is_pre_order value the tab selects.
func (t Tab) PreOrder() bool {
	return t == TabPreOrder
}

// Matches reports whether an item with the given pre-order flag belongs on the tab.
func (t Tab) Matches(isPreOrder bool) bool {
	return t.PreOrder() == isPreOrder
}

// ItemInput is an item as the board submits it. An empty ID asks the server
// to derive one.
type ItemInput struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	PriceCash   types.Price `json:"priceCash"`
	PricePayday types.Price `json:"pricePayday"`
	IsAvailable bool        `json:"isAvailable"`
	IsPreOrder  bool        `json:"isPreOrder"`
}

// SaveInput upserts one item for a vendor.
type SaveInput struct {
	VendorKey string    `json:"vendorKey" validate:"required"`
	Item      ItemInput `json:"item" validate:"required"`
}

// DeleteInput removes one item owned by a vendor.
type DeleteInput struct {
	VendorKey string `json:"vendorKey" validate:"required"`
	ItemID    string `json:"itemId" validate:"required"`
}

// SoldOutInput marks every item of a vendor on one tab unavailable.
type SoldOutInput struct {
	VendorKey string `json:"vendorKey" validate:"required"`
	ActiveTab string `json:"activeTab" validate:"required"`
}

// ToModel maps the input onto a row owned by vendorKey.
func (in ItemInput) ToModel(vendorKey string) models.Item {
	return models.Item{
		ID:          strings.TrimSpace(in.ID),
		VendorID:    vendorKey,
		Name:        strings.TrimSpace(in.Name),
		PriceCash:   in.PriceCash.NullDecimal,
		PricePayday: in.PricePayday.NullDecimal,
		IsAvailable: in.IsAvailable,
		IsPreOrder:  in.IsPreOrder,
	}
}

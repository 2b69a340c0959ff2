package vendors

import (
	"strings"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// RegisterInput is the new-vendor form. The seed item is optional and is
// ignored when its name is blank.
type RegisterInput struct {
	FullName        string      `json:"fullName" validate:"required"`
	AccountName     string      `json:"accountName" validate:"required"`
	ItemName        string      `json:"itemName"`
	ItemPriceCash   types.Price `json:"itemPriceCash"`
	ItemPricePayday types.Price `json:"itemPricePayday"`
	ItemPreOrder    bool        `json:"itemPreOrder"`
}

// SeedItem is the first listing created together with a vendor.
type SeedItem struct {
	Name        string
	PriceCash   types.Price
	PricePayday types.Price
	IsPreOrder  bool
}

// Seed returns the optional first item, or nil.
func (in RegisterInput) Seed() *SeedItem {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil
	}
	return &SeedItem{
		Name:        name,
		PriceCash:   in.ItemPriceCash,
		PricePayday: in.ItemPricePayday,
		IsPreOrder:  in.ItemPreOrder,
	}
}

type RegisterResult struct {
	VendorKey string `json:"vendorKey"`
	ItemID    string `json:"itemId,omitempty"`
}

// DeleteInput removes a vendor and, by cascade, its items and orders.
type DeleteInput struct {
	VendorKey string `json:"vendorKey" validate:"required"`
}

// SaveChangesInput replaces a vendor's name, items and orders wholesale.
type SaveChangesInput struct {
	VendorKey string            `json:"vendorKey" validate:"required"`
	Name      string            `json:"name" validate:"required"`
	Items     []items.ItemInput `json:"items"`
	Buyers    []BuyerInput      `json:"buyers"`
}

// BuyerInput is an order as it appears in the marketplace snapshot.
type BuyerInput struct {
	BuyerName     string `json:"buyerName"`
	OrderAccount  string `json:"orderAccount"`
	BuyerNote     string `json:"buyerNote"`
	ItemName      string `json:"itemName"`
	PaymentMethod string `json:"paymentMethod"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	IsPreOrder    bool   `json:"isPreOrder"`
}

func (b BuyerInput) order(vendorKey string) orders.PlaceInput {
	return orders.PlaceInput{
		VendorKey:     vendorKey,
		BuyerName:     b.BuyerName,
		OrderAccount:  b.OrderAccount,
		BuyerNote:     b.BuyerNote,
		ItemName:      b.ItemName,
		PaymentMethod: b.PaymentMethod,
		OrderDate:     b.Date,
		OrderTime:     b.Time,
		IsPreOrder:    b.IsPreOrder,
	}
}

type SaveChangesResult struct {
	Items  int `json:"items"`
	Buyers int `json:"buyers"`
}

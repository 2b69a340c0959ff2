package orders

import (
	"fmt"
	"strings"

	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

// PaymentMethod is a label only; no payment is processed.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentPayday PaymentMethod = "Payday"
)

// ParsePaymentMethod normalises "cash"/"payday" to their canonical labels.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "cash":
		return PaymentCash, nil
	case "payday":
		return PaymentPayday, nil
	}
	return "", fmt.Errorf("unknown payment method %q", value)
}

// PlaceInput is one buyer order. Date and time are stamped by the client.
type PlaceInput struct {
	VendorKey     string `json:"vendorKey" validate:"required"`
	BuyerName     string `json:"buyerName" validate:"required"`
	OrderAccount  string `json:"orderAccount" validate:"required"`
	BuyerNote     string `json:"buyerNote"`
	ItemName      string `json:"itemName" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	OrderDate     string `json:"orderDate" validate:"required"`
	OrderTime     string `json:"orderTime" validate:"required"`
	IsPreOrder    bool   `json:"isPreOrder"`
}

// ClearInput removes every order of a vendor.
type ClearInput struct {
	VendorKey string `json:"vendorKey" validate:"required"`
}

func (in PlaceInput) trimmed() PlaceInput {
	in.VendorKey = strings.TrimSpace(in.VendorKey)
	in.BuyerName = strings.TrimSpace(in.BuyerName)
	in.OrderAccount = strings.TrimSpace(in.OrderAccount)
	in.BuyerNote = strings.TrimSpace(in.BuyerNote)
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.OrderDate = strings.TrimSpace(in.OrderDate)
	in.OrderTime = strings.TrimSpace(in.OrderTime)
	return in
}

func (in PlaceInput) missing() bool {
	return in.VendorKey == "" || in.BuyerName == "" || in.OrderAccount == "" || in.ItemName == "" ||
		in.PaymentMethod == "" || in.OrderDate == "" || in.OrderTime == ""
}

// Normalize trims the order, checks required fields and returns the row to store.
func (in PlaceInput) Normalize() (models.Buyer, error) {
	in = in.trimmed()
	if in.missing() {
		return models.Buyer{}, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}
	method, err := ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return models.Buyer{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, `paymentMethod must be "Cash" or "Payday"`)
	}
	return in.ToModel(method), nil
}

// ToModel maps an order onto a buyers row; a blank note is stored as NULL.
func (in PlaceInput) ToModel(method PaymentMethod) models.Buyer {
	buyer := models.Buyer{
		VendorID:      in.VendorKey,
		BuyerName:     in.BuyerName,
		OrderAccount:  in.OrderAccount,
		ItemName:      in.ItemName,
		PaymentMethod: string(method),
		OrderDate:     in.OrderDate,
		OrderTime:     in.OrderTime,
		IsPreOrder:    in.IsPreOrder,
	}
	if in.BuyerNote != "" {
		note := in.BuyerNote
		buyer.BuyerNote = &note
	}
	return buyer
}

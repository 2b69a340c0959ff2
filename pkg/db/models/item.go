package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          string              `gorm:"column:id;primaryKey"`
	VendorID    string              `gorm:"column:vendor_id;not null;index"`
	Name        string              `gorm:"column:name;not null"`
	PriceCash   decimal.NullDecimal `gorm:"column:price_cash;type:numeric(12,2)"`
	PricePayday decimal.NullDecimal `gorm:"column:price_payday;type:numeric(12,2)"`
	IsAvailable bool                `gorm:"column:is_available;not null"`
	IsPreOrder  bool                `gorm:"column:is_pre_order;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (Item) TableName() string { return "items" }

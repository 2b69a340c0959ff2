package models

import "time"

// Buyer is one placed order. ItemName is a snapshot and survives item deletion.
type Buyer struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID      string    `gorm:"column:vendor_id;not null;index"`
	BuyerName     string    `gorm:"column:buyer_name;not null"`
	OrderAccount  string    `gorm:"column:order_account;not null"`
	BuyerNote     *string   `gorm:"column:buyer_note"`
	ItemName      string    `gorm:"column:item_name;not null"`
	PaymentMethod string    `gorm:"column:payment_method;not null"`
	OrderDate     string    `gorm:"column:order_date;not null"`
	OrderTime     string    `gorm:"column:order_time;not null"`
	IsPreOrder    bool      `gorm:"column:is_pre_order;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Buyer) TableName() string { return "buyers" }

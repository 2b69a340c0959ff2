package models

import "time"

// Vendor is a board seller. ID and Key hold the same derived vendor key.
type Vendor struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Key       string    `gorm:"column:key;not null;uniqueIndex:ux_vendors_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Vendor) TableName() string { return "vendors" }

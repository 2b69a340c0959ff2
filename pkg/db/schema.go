package db

import (
	"context"
	"fmt"
)

// sqliteSchema mirrors pkg/migrate/migrations for the embedded driver.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		key TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_vendors_key ON vendors (key)`,
	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		vendor_id TEXT NOT NULL REFERENCES vendors (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		price_cash NUMERIC,
		price_payday NUMERIC,
		is_available BOOLEAN NOT NULL DEFAULT 1,
		is_pre_order BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_vendor_id ON items (vendor_id)`,
	`CREATE TABLE IF NOT EXISTS buyers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vendor_id TEXT NOT NULL REFERENCES vendors (id) ON DELETE CASCADE,
		buyer_name TEXT NOT NULL,
		order_account TEXT NOT NULL,
		buyer_note TEXT,
		item_name TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		order_date TEXT NOT NULL,
		order_time TEXT NOT NULL,
		is_pre_order BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_buyers_vendor_id ON buyers (vendor_id)`,
}

// EnsureSQLiteSchema creates the board tables when missing.
func (c *Client) EnsureSQLiteSchema(ctx context.Context) error {
	if c.Dialect() != "sqlite" {
		return fmt.Errorf("sqlite schema requested on %s connection", c.Dialect())
	}
	for _, stmt := range sqliteSchema {
		if err := c.Exec(ctx, stmt).Error; err != nil {
			return fmt.Errorf("applying sqlite schema: %w", err)
		}
	}
	return nil
}

package models

import "time"

// Base contains common columns for all tables. There is deliberately no
// soft-delete column: the transaction ledger is append-only and position
// aggregation runs raw SUM queries over the table.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "github.com/shopspring/decimal"

// DefaultCash is the simulated cash balance every account starts with,
// and the balance restored by a portfolio reset: exactly 10000.00.
var DefaultCash = decimal.New(1000000, -2)

// User represents a registered account. Cash is maintained incrementally:
// it is only ever mutated through a logged trade or an explicit reset,
// never recomputed from the transaction ledger.
type User struct {
	Base
	Username     string          `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"not null" json:"-"`
	Cash         decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"cash"`
	Transactions []Transaction   `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}

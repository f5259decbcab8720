package models

import "github.com/shopspring/decimal"

// TradeSide labels a ledger row as a buy or a sell for display purposes.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Transaction is one row of the append-only trade ledger, the sole source
// of truth for positions. Quantity is signed: positive for buys, negative
// for sells. Price is the quoted price at execution time. Rows are never
// updated; they are deleted only in bulk by an explicit portfolio reset.
type Transaction struct {
	Base
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	SecurityID uint            `gorm:"not null;index" json:"security_id"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Security Security `gorm:"foreignKey:SecurityID" json:"security,omitempty"`
}

// Side derives the trade side from the sign of the quantity.
func (t *Transaction) Side() TradeSide {
	if t.Quantity.IsNegative() {
		return TradeSideSell
	}
	return TradeSideBuy
}

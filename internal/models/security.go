package models

// Security represents a tradable instrument. Rows are created lazily on
// the first buy of an unseen symbol and are immutable thereafter; symbol
// is the identity key and must never be duplicated.
type Security struct {
	Base
	Symbol string `gorm:"uniqueIndex;not null" json:"symbol"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
}

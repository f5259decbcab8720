package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

// UserServicer defines the contract for registration and authentication.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AccountServicer defines the contract for account maintenance: portfolio
// resets and credential rotation.
type AccountServicer interface {
	// ResetPortfolio deletes all of the user's ledger rows and restores the
	// default cash balance as one atomic unit. When confirmed is false it
	// changes nothing and reports false.
	ResetPortfolio(userID uint, confirmed bool) (bool, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
}

// TradeConfirmation summarizes an executed trade.
type TradeConfirmation struct {
	Symbol string           `json:"symbol"`
	Name   string           `json:"name"`
	Side   models.TradeSide `json:"side"`
	Shares int64            `json:"shares"`
	Price  decimal.Decimal  `json:"price"`
	Total  decimal.Decimal  `json:"total"`
	Cash   decimal.Decimal  `json:"cash"`
}

// TradeServicer defines the contract for executing buys and sells.
type TradeServicer interface {
	Buy(ctx context.Context, userID uint, symbol string, shares int64) (*TradeConfirmation, error)
	Sell(ctx context.Context, userID uint, symbol string, shares int64) (*TradeConfirmation, error)
}

// Position is a user's current net holding of one security, derived from
// the ledger. Ordering of positions is unspecified.
type Position struct {
	SecurityID uint            `json:"security_id"`
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// Holding is a position valued at the current quoted price.
type Holding struct {
	Position
	Price decimal.Decimal `json:"price"`
	Value decimal.Decimal `json:"value"`
}

// Portfolio is the full valued view: held securities, cash, and the
// running total of cash plus all line values.
type Portfolio struct {
	Holdings []Holding       `json:"holdings"`
	Cash     decimal.Decimal `json:"cash"`
	Total    decimal.Decimal `json:"total"`
}

// HistoryEntry is one ledger row prepared for display.
type HistoryEntry struct {
	ID       uint             `json:"id"`
	Symbol   string           `json:"symbol"`
	Name     string           `json:"name"`
	Side     models.TradeSide `json:"side"`
	Quantity decimal.Decimal  `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Total    decimal.Decimal  `json:"total"`
	Time     time.Time        `json:"time"`
}

// PortfolioServicer defines the contract for reading positions, valued
// portfolios, and transaction history.
type PortfolioServicer interface {
	GetPositions(userID uint) ([]Position, error)
	GetPortfolio(ctx context.Context, userID uint) (*Portfolio, error)
	GetHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[HistoryEntry], error)
}

// AuditServicer defines the contract for recording audit events.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, details map[string]any)
}

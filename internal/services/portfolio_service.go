package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/quote"
)

// portfolioService derives positions from the ledger and values them at
// live quoted prices.
type portfolioService struct {
	db     *gorm.DB
	quotes quote.Gateway
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, quotes quote.Gateway) PortfolioServicer {
	return &portfolioService{db: db, quotes: quotes}
}

// netPosition computes the user's current net quantity of one security:
// the sum of all signed ledger quantities for the (user, security) pair.
// Used by the trade executor from inside its store transaction so the
// position read and the subsequent insert are one atomic unit.
func netPosition(tx *gorm.DB, userID, securityID uint) (decimal.Decimal, error) {
	var row struct {
		Quantity decimal.Decimal
	}
	err := tx.Model(&models.Transaction{}).
		Select("COALESCE(SUM(quantity), 0) AS quantity").
		Where("user_id = ? AND security_id = ?", userID, securityID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return row.Quantity, nil
}

// aggregatePositions returns the net quantity per security the user has
// ever transacted, excluding anything fully sold out (net quantity <= 0).
func aggregatePositions(tx *gorm.DB, userID uint) ([]Position, error) {
	var rows []Position
	err := tx.Table("transactions t").
		Select("t.security_id, s.symbol, s.name, SUM(t.quantity) AS quantity").
		Joins("INNER JOIN securities s ON s.id = t.security_id").
		Where("t.user_id = ?", userID).
		Group("t.security_id, s.symbol, s.name").
		Having("SUM(t.quantity) > 0").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return rows, nil
}

// GetPositions returns the user's current net holdings. A security whose
// net quantity is zero or negative is absent, not present-with-zero.
func (s *portfolioService) GetPositions(userID uint) ([]Position, error) {
	return aggregatePositions(s.db, userID)
}

// GetPortfolio values the user's positions at current quoted prices and
// returns them together with cash and the running total. A failed quote
// lookup for any held symbol fails the whole valuation: there is no
// partial portfolio and no stale-price fallback.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID uint) (*Portfolio, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	positions, err := s.GetPositions(userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Holdings: make([]Holding, 0, len(positions)),
		Cash:     user.Cash,
		Total:    user.Cash,
	}

	for _, p := range positions {
		q, err := s.quotes.Lookup(ctx, p.Symbol)
		if err != nil {
			return nil, err
		}
		value := q.Price.Mul(p.Quantity)
		portfolio.Holdings = append(portfolio.Holdings, Holding{
			Position: p,
			Price:    q.Price,
			Value:    value,
		})
		portfolio.Total = portfolio.Total.Add(value)
	}

	return portfolio, nil
}

// GetHistory returns the user's ledger rows newest first, labeled by side,
// with the signed total of each trade.
func (s *portfolioService) GetHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[HistoryEntry], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Security").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	entries := make([]HistoryEntry, 0, len(transactions))
	for i := range transactions {
		tx := &transactions[i]
		entries = append(entries, HistoryEntry{
			ID:       tx.ID,
			Symbol:   tx.Security.Symbol,
			Name:     tx.Security.Name,
			Side:     tx.Side(),
			Quantity: tx.Quantity,
			Price:    tx.Price,
			Total:    tx.Price.Mul(tx.Quantity),
			Time:     tx.CreatedAt,
		})
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

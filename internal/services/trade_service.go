package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/quote"
)

// tradeService validates and applies buys and sells against the ledger.
type tradeService struct {
	db     *gorm.DB
	quotes quote.Gateway
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB, quotes quote.Gateway) TradeServicer {
	return &tradeService{db: db, quotes: quotes}
}

// serializable scopes each trade's cash/position check and its writes to a
// single serializable store transaction, so two concurrent trades against
// the same account cannot both pass a check that only one of them may pass.
var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// validateOrder normalizes the symbol and rejects malformed order input.
func validateOrder(symbol string, shares int64) (string, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if shares <= 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "share quantity must be a positive integer")
	}
	return symbol, nil
}

// Buy purchases shares at the current quoted price. The security row is
// created lazily on the first buy of an unseen symbol. Security resolution,
// the ledger insert, and the cash debit persist as one atomic unit.
func (s *tradeService) Buy(ctx context.Context, userID uint, symbol string, shares int64) (*TradeConfirmation, error) {
	symbol, err := validateOrder(symbol, shares)
	if err != nil {
		return nil, err
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quantity := decimal.NewFromInt(shares)
	total := q.Price.Mul(quantity)

	var conf *TradeConfirmation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.First(&user, userID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		// Exactly-sufficient funds succeed: the check is non-strict.
		if total.GreaterThan(user.Cash) {
			return apperrors.ErrInsufficientFunds
		}

		security, txErr := resolveSecurity(tx, q)
		if txErr != nil {
			return txErr
		}

		trade := &models.Transaction{
			UserID:     userID,
			SecurityID: security.ID,
			Quantity:   quantity,
			Price:      q.Price,
		}
		if txErr := tx.Create(trade).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		newCash := user.Cash.Sub(total)
		if txErr := tx.Model(&user).Update("cash", newCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		conf = &TradeConfirmation{
			Symbol: q.Symbol,
			Name:   q.Name,
			Side:   models.TradeSideBuy,
			Shares: shares,
			Price:  q.Price,
			Total:  total,
			Cash:   newCash,
		}
		return nil
	}, serializable)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// Sell disposes of shares at the current quoted price. The position check,
// the ledger insert, and the cash credit persist as one atomic unit; the
// position is read inside that unit, so a concurrent sell cannot slip past
// the check.
func (s *tradeService) Sell(ctx context.Context, userID uint, symbol string, shares int64) (*TradeConfirmation, error) {
	symbol, err := validateOrder(symbol, shares)
	if err != nil {
		return nil, err
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quantity := decimal.NewFromInt(shares)
	total := q.Price.Mul(quantity)

	var conf *TradeConfirmation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var security models.Security
		if txErr := tx.Where("symbol = ?", q.Symbol).First(&security).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				// Never transacted by anyone, so certainly not owned.
				return apperrors.ErrNotOwned
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		position, txErr := netPosition(tx, userID, security.ID)
		if txErr != nil {
			return txErr
		}
		if !position.IsPositive() {
			return apperrors.ErrNotOwned
		}
		// Selling the entire position is allowed: the check is non-strict.
		if position.LessThan(quantity) {
			return apperrors.ErrInsufficientShares
		}

		var user models.User
		if txErr := tx.First(&user, userID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		trade := &models.Transaction{
			UserID:     userID,
			SecurityID: security.ID,
			Quantity:   quantity.Neg(),
			Price:      q.Price,
		}
		if txErr := tx.Create(trade).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		newCash := user.Cash.Add(total)
		if txErr := tx.Model(&user).Update("cash", newCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		conf = &TradeConfirmation{
			Symbol: q.Symbol,
			Name:   q.Name,
			Side:   models.TradeSideSell,
			Shares: shares,
			Price:  q.Price,
			Total:  total,
			Cash:   newCash,
		}
		return nil
	}, serializable)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// resolveSecurity finds or creates the security row for a quoted symbol.
// The insert uses ON CONFLICT DO NOTHING keyed on the symbol, so a row
// created concurrently elsewhere can never be duplicated.
func resolveSecurity(tx *gorm.DB, q *quote.Quote) (*models.Security, error) {
	security := models.Security{Symbol: q.Symbol, Name: q.Name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&security).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	// A zero ID means the insert hit the conflict clause; re-read the row.
	if security.ID == 0 {
		if err := tx.Where("symbol = ?", q.Symbol).First(&security).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
	}

	return &security, nil
}

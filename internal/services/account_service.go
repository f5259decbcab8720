package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
)

// accountService handles portfolio resets and credential rotation.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// ResetPortfolio deletes every ledger row belonging to the user and restores
// the default cash balance. Both mutations happen in one store transaction.
// Declining (confirmed=false) is a no-op, reported to the caller as false
// rather than an error.
func (s *accountService) ResetPortfolio(userID uint, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.First(&user, userID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		if txErr := tx.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		if txErr := tx.Model(&user).Update("cash", models.DefaultCash).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, txErr)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// ChangePassword verifies the current password against the stored hash and,
// on success, replaces the hash. On mismatch nothing changes.
func (s *accountService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "new password is required")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	return nil
}

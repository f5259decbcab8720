package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"papertrade/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, a unique username,
// and the default cash balance.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithCash(t, db, models.DefaultCash)
}

// CreateTestUserWithCash creates a user with the given cash balance.
func CreateTestUserWithCash(t *testing.T, db *gorm.DB, cash decimal.Decimal) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user%d", nextID()),
		PasswordHash: string(hash),
		Cash:         cash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSecurity creates a security with the given symbol.
func CreateTestSecurity(t *testing.T, db *gorm.DB, symbol, name string) *models.Security {
	t.Helper()

	sec := &models.Security{Symbol: symbol, Name: name}
	if err := db.Create(sec).Error; err != nil {
		t.Fatalf("failed to create test security: %v", err)
	}
	return sec
}

// CreateTestTransaction appends a ledger row with the given signed quantity
// and execution price.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, securityID uint, quantity, price decimal.Decimal) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:     userID,
		SecurityID: securityID,
		Quantity:   quantity,
		Price:      price,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// D parses a decimal literal, failing the test on malformed input.
func D(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

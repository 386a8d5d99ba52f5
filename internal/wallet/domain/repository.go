package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository defines persistence operations for wallet balances and the
// ledger. Balance mutations are guarded UPDATEs on the users table so a
// debit can never take a balance below zero.
type Repository interface {
	InsertEntry(ctx context.Context, db *gorm.DB, entry *LedgerEntry) error
	ListEntries(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]LedgerEntry, error)

	// Credit adds amountCents to the user's balance and returns the
	// resulting balance.
	Credit(ctx context.Context, db *gorm.DB, userID snowflake.ID, amountCents int64) (int64, error)
	// Debit subtracts amountCents when the balance covers it and returns
	// the resulting balance. ok is false when funds were insufficient.
	Debit(ctx context.Context, db *gorm.DB, userID snowflake.ID, amountCents int64) (balance int64, ok bool, err error)
	Balance(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrAccountNotFound   = errors.New("account_not_found")
)

type TopupRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Reference   string `json:"reference"`
}

// Statement is a wallet balance with its recent ledger entries.
type Statement struct {
	UserID       snowflake.ID  `json:"user_id"`
	BalanceCents int64         `json:"balance_cents"`
	Entries      []LedgerEntry `json:"entries"`
}

// Service manages wallet balances. Every balance change writes a ledger
// entry in the same transaction.
type Service interface {
	Topup(ctx context.Context, userID snowflake.ID, req TopupRequest) (*LedgerEntry, error)
	Statement(ctx context.Context, userID snowflake.ID) (*Statement, error)

	// Charge debits the wallet inside the caller's transaction and writes
	// the matching ledger entry. Used by purchase fulfillment.
	Charge(ctx context.Context, tx *gorm.DB, userID snowflake.ID, amountCents int64, reference string) (*LedgerEntry, error)
}

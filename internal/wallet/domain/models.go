package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Ledger entry types.
const (
	TypeTopup  = "topup"
	TypeCharge = "charge"
	TypeRefund = "refund"
)

// LedgerEntry is one append-only movement on a user's wallet. AmountCents
// is signed: topups are positive, charges negative. BalanceAfterCents
// snapshots the balance the entry produced, written in the same
// transaction as the balance update.
type LedgerEntry struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID            snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	Type              string       `gorm:"not null" json:"type"`
	AmountCents       int64        `gorm:"column:amount_cents;not null" json:"amount_cents"`
	BalanceAfterCents int64        `gorm:"column:balance_after_cents;not null" json:"balance_after_cents"`
	Reference         string       `gorm:"column:reference" json:"reference,omitempty"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (LedgerEntry) TableName() string { return "wallet_ledger" }

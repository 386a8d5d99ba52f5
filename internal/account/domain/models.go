package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role values for User accounts.
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

// User is a customer-facing account with a wallet balance.
type User struct {
	ID                 snowflake.ID `gorm:"primaryKey" json:"id"`
	DisplayName        string       `gorm:"not null" json:"display_name"`
	Email              string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash       string       `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role               string       `gorm:"not null;default:customer" json:"role"`
	WalletBalanceCents int64        `gorm:"not null;default:0" json:"wallet_balance_cents"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

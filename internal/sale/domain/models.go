package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SaleEvent is one recorded dispense, append-only. Daily totals are
// derived from these rows rather than kept as mutable counters, so
// concurrent recordings never race on a shared row.
type SaleEvent struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	RecipeName  string        `gorm:"column:recipe_name;not null;index" json:"recipe_name"`
	UserID      snowflake.ID  `gorm:"column:user_id;not null" json:"user_id"`
	MachineID   *snowflake.ID `gorm:"column:machine_id" json:"machine_id,omitempty"`
	AmountCents int64         `gorm:"column:amount_cents;not null" json:"amount_cents"`
	OccurredAt  time.Time     `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (SaleEvent) TableName() string { return "sale_events" }

// DailyCount is an aggregate over sale events for one calendar day.
type DailyCount struct {
	Day        string `json:"day"`
	Count      int64  `json:"count"`
	TotalCents int64  `json:"total_cents"`
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Machine is a physical dispensing unit identified by an external string key
// reported by its embedded controller.
type Machine struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	MachineID string        `gorm:"column:machine_id;not null;uniqueIndex" json:"machine_id"`
	OwnerID   *snowflake.ID `gorm:"column:owner_id;index" json:"owner_id,omitempty"`
	Label     string        `json:"label"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Machine) TableName() string { return "machines" }

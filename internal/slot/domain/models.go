package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// BottleSlot is a physical bottle position on a machine holding one liquid.
// MachineID is nullable for rows created in the legacy single-machine mode.
type BottleSlot struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	MachineID       *snowflake.ID     `gorm:"column:machine_id;uniqueIndex:idx_machine_slot" json:"machine_id,omitempty"`
	SlotNumber      int               `gorm:"column:slot_number;not null;uniqueIndex:idx_machine_slot" json:"slot_number"`
	LiquidName      string            `gorm:"column:liquid_name" json:"liquid_name"`
	CurrentVolumeML float64           `gorm:"column:current_volume_ml;not null;default:0" json:"current_volume_ml"`
	CapacityML      float64           `gorm:"column:capacity_ml;not null;default:1000" json:"capacity_ml"`
	IsEnabled       bool              `gorm:"column:is_enabled;not null;default:true" json:"is_enabled"`
	LastRefillAt    *time.Time        `gorm:"column:last_refill_at" json:"last_refill_at,omitempty"`
	Calibration     datatypes.JSONMap `gorm:"type:jsonb" json:"calibration,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BottleSlot) TableName() string { return "bottle_slots" }

// PercentFull reports the fill level clamped to [0, 100].
func (s BottleSlot) PercentFull() float64 {
	if s.CapacityML <= 0 {
		return 0
	}
	pct := (s.CurrentVolumeML / s.CapacityML) * 100.0
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var (
	ErrSlotNotFound  = errors.New("slot_not_found")
	ErrSlotTaken     = errors.New("slot_number_taken")
	ErrInvalidSlot   = errors.New("invalid_slot")
	ErrSlotInUse     = errors.New("slot_in_use")
	ErrInvalidSlotID = errors.New("invalid_slot_id")
)

type CreateSlotRequest struct {
	// MachineRef accepts either a numeric machine primary key or the
	// machine's external identifier. Empty leaves the slot unassigned.
	MachineRef      string             `json:"machine"`
	SlotNumber      int                `json:"slot_number" binding:"required"`
	LiquidName      string             `json:"liquid_name"`
	CurrentVolumeML float64            `json:"current_volume_ml"`
	CapacityML      float64            `json:"capacity_ml"`
	IsEnabled       *bool              `json:"is_enabled"`
	Calibration     datatypes.JSONMap  `json:"calibration"`
}

type UpdateSlotRequest struct {
	MachineRef      *string            `json:"machine"`
	SlotNumber      *int               `json:"slot_number"`
	LiquidName      *string            `json:"liquid_name"`
	CurrentVolumeML *float64           `json:"current_volume_ml"`
	CapacityML      *float64           `json:"capacity_ml"`
	IsEnabled       *bool              `json:"is_enabled"`
	Calibration     *datatypes.JSONMap `json:"calibration"`
}

type ListSlotsRequest struct {
	// MachineRef filters by machine when set.
	MachineRef string `form:"machine"`
}

// Service manages bottle slots.
type Service interface {
	Create(ctx context.Context, req CreateSlotRequest) (*BottleSlot, error)
	Get(ctx context.Context, id string) (*BottleSlot, error)
	List(ctx context.Context, req ListSlotsRequest) ([]BottleSlot, error)
	Update(ctx context.Context, id string, req UpdateSlotRequest) (*BottleSlot, error)
	Delete(ctx context.Context, id string) error
	Refill(ctx context.Context, id string) (*BottleSlot, error)

	// GetBySlotNumber resolves a slot by its physical position.
	GetBySlotNumber(ctx context.Context, slotNumber int) (*BottleSlot, error)
	// GetByID resolves a slot by primary key.
	GetByID(ctx context.Context, id snowflake.ID) (*BottleSlot, error)
}

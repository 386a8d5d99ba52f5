package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository defines persistence operations for bottle slots.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, slot *BottleSlot) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BottleSlot, error)
	FindBySlotNumber(ctx context.Context, db *gorm.DB, slotNumber int) (*BottleSlot, error)
	// FindEnabledByLiquidName resolves the enabled slot currently holding
	// the named liquid. Slots with more liquid left win ties.
	FindEnabledByLiquidName(ctx context.Context, db *gorm.DB, liquidName string) (*BottleSlot, error)
	List(ctx context.Context, db *gorm.DB, machineID *snowflake.ID) ([]BottleSlot, error)
	Update(ctx context.Context, db *gorm.DB, slot *BottleSlot) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	// DecrementVolume subtracts volumeML from the slot's current volume,
	// flooring the result at zero. Runs as a single guarded UPDATE so
	// concurrent pours never drive the level negative.
	DecrementVolume(ctx context.Context, db *gorm.DB, id snowflake.ID, volumeML float64) error
}

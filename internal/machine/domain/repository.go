package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, machine *Machine) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Machine, error)
	FindByMachineID(ctx context.Context, db *gorm.DB, machineID string) (*Machine, error)
	List(ctx context.Context, db *gorm.DB) ([]*Machine, error)
	Update(ctx context.Context, db *gorm.DB, machine *Machine) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

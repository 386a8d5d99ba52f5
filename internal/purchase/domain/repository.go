package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository defines persistence operations for purchases.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, purchase *Purchase) error
	InsertItem(ctx context.Context, db *gorm.DB, item *PurchaseItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Purchase, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]Purchase, error)
}

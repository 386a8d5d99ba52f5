package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for legacy bottles.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bottle *Bottle) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Bottle, error)
	List(ctx context.Context, db *gorm.DB) ([]Bottle, error)
	ListIDs(ctx context.Context, db *gorm.DB) ([]string, error)
	Update(ctx context.Context, db *gorm.DB, bottle *Bottle) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository defines persistence operations for ingredients.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ingredient *Ingredient) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Ingredient, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Ingredient, error)
	List(ctx context.Context, db *gorm.DB) ([]Ingredient, error)
	Update(ctx context.Context, db *gorm.DB, ingredient *Ingredient) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

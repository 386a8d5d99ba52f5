package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for recipes and their
// component lines.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, recipe *Recipe) error
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Recipe, error)
	List(ctx context.Context, db *gorm.DB) ([]Recipe, error)
	Update(ctx context.Context, db *gorm.DB, recipe *Recipe) error
	Delete(ctx context.Context, db *gorm.DB, name string) error

	// ReplaceIngredients deletes every component line of the named recipe
	// and inserts the given set in its place.
	ReplaceIngredients(ctx context.Context, db *gorm.DB, recipeName string, rows []RecipeIngredient) error
	ListIngredients(ctx context.Context, db *gorm.DB, recipeName string) ([]RecipeIngredient, error)
	ListAllIngredients(ctx context.Context, db *gorm.DB) ([]RecipeIngredient, error)
}

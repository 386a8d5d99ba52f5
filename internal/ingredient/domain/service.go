package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrIngredientNotFound  = errors.New("ingredient_not_found")
	ErrNameTaken           = errors.New("ingredient_name_taken")
	ErrInvalidIngredient   = errors.New("invalid_ingredient")
	ErrInvalidIngredientID = errors.New("invalid_ingredient_id")
	ErrIngredientInUse     = errors.New("ingredient_in_use")
)

type CreateIngredientRequest struct {
	Name string  `json:"name" binding:"required"`
	ABV  float64 `json:"abv"`
}

type UpdateIngredientRequest struct {
	Name *string  `json:"name"`
	ABV  *float64 `json:"abv"`
}

// Service manages ingredients.
type Service interface {
	Create(ctx context.Context, req CreateIngredientRequest) (*Ingredient, error)
	Get(ctx context.Context, id string) (*Ingredient, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Ingredient, error)
	List(ctx context.Context) ([]Ingredient, error)
	Update(ctx context.Context, id string, req UpdateIngredientRequest) (*Ingredient, error)
	Delete(ctx context.Context, id string) error

	// GetOrCreateByName resolves an ingredient by exact name, creating it
	// when absent. It runs against the given handle so sync workflows can
	// call it inside their own transaction.
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*Ingredient, error)
}

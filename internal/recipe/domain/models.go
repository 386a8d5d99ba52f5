package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
)

// DefaultPriceCents is charged for a recipe that never had a price set.
const DefaultPriceCents int64 = 120

// Recipe is a drink definition keyed by name. Dispensers address recipes
// by name on the wire, so the name is the primary key rather than a
// surrogate id.
type Recipe struct {
	Name       string    `gorm:"primaryKey" json:"name"`
	PriceCents int64     `gorm:"column:price_cents;not null;default:120" json:"price_cents"`
	ImageURL   string    `gorm:"column:image_url" json:"image_url,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is one component line of a recipe. The set for a
// recipe is replaced wholesale on every sync.
type RecipeIngredient struct {
	ID           snowflake.ID                 `gorm:"primaryKey" json:"id"`
	RecipeName   string                       `gorm:"column:recipe_name;not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_name"`
	IngredientID snowflake.ID                 `gorm:"column:ingredient_id;not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	AmountML     float64                      `gorm:"column:amount_ml;not null" json:"amount_ml"`
	Ingredient   *ingredientdomain.Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	CreatedAt    time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

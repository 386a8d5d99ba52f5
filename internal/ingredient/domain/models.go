package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Ingredient is a named liquid that recipes are composed of. Names are
// unique; the sync path creates ingredients on first sight of a name.
type Ingredient struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;not null" json:"name"`
	ABV       float64      `gorm:"column:abv;not null;default:0" json:"abv"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Ingredient) TableName() string { return "ingredients" }

package domain

import "time"

// Bottle is the legacy flat bottle record from before machines and
// slots existed. Ids are strings of the form "b<N>"; older dispensers
// still address bottles by them.
type Bottle struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	BottleType     string    `gorm:"column:bottle_type" json:"bottle_type"`
	IngredientName string    `gorm:"column:ingredient" json:"ingredient"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Bottle) TableName() string { return "bottles" }

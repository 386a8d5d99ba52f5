package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Payment methods.
const (
	PaymentWallet = "wallet"
	PaymentCard   = "card"
	PaymentCash   = "cash"
	PaymentMobile = "mobile"
)

// Purchase statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// Purchase is one paid order of a recipe. UserID is nil for anonymous
// orders posted straight from a machine. Fulfillment lines record which
// slots actually poured; a purchase completes even when some components
// had no matching slot.
type Purchase struct {
	ID                   snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID               *snowflake.ID     `gorm:"column:user_id;index" json:"user_id,omitempty"`
	RecipeName           string            `gorm:"column:recipe_name;not null" json:"recipe_name"`
	Quantity             int               `gorm:"not null;default:1" json:"quantity"`
	AmountPaidCents      int64             `gorm:"column:amount_paid_cents;not null" json:"amount_paid_cents"`
	PriceAtPurchaseCents int64             `gorm:"column:price_at_purchase_cents;not null" json:"price_at_purchase_cents"`
	PaymentMethod        string            `gorm:"column:payment_method;not null" json:"payment_method"`
	Status               string            `gorm:"not null" json:"status"`
	Metadata             datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt            time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Purchase) TableName() string { return "purchases" }

// PurchaseItem is one poured component of a purchase. SlotID references
// the slot that poured; deleting a slot with pour history is rejected.
type PurchaseItem struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	PurchaseID     snowflake.ID `gorm:"column:purchase_id;not null;index" json:"purchase_id"`
	SlotID         snowflake.ID `gorm:"column:slot_id;not null" json:"slot_id"`
	IngredientName string       `gorm:"column:ingredient_name;not null" json:"ingredient_name"`
	AmountML       float64      `gorm:"column:amount_ml;not null" json:"amount_ml"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (PurchaseItem) TableName() string { return "purchase_items" }

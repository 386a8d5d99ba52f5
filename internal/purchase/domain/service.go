package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var (
	ErrPurchaseNotFound  = errors.New("purchase_not_found")
	ErrInvalidPurchase   = errors.New("invalid_purchase")
	ErrInvalidPurchaseID = errors.New("invalid_purchase_id")
	ErrInvalidPayment    = errors.New("invalid_payment_method")
)

// PurchaseBottleRequest is one client-supplied pour: which slot poured
// and how much. Pairs naming a slot that does not exist are skipped.
type PurchaseBottleRequest struct {
	SlotID   snowflake.ID
	VolumeML float64
}

// CreatePurchaseRequest mirrors what dispensers and the frontend post.
// UserID is an optional account reference; an unknown reference leaves
// the purchase anonymous rather than failing it. AmountPaidCents and
// PriceAtPurchaseCents default from the recipe price. When Bottles is
// empty, fulfillment falls back to the recipe's component list.
type CreatePurchaseRequest struct {
	RecipeName           string
	Quantity             int
	PaymentMethod        string
	Status               string
	UserID               string
	AmountPaidCents      *int64
	PriceAtPurchaseCents *int64
	Metadata             datatypes.JSONMap
	Bottles              []PurchaseBottleRequest
}

// PurchaseResult is a completed purchase plus the components that had no
// matching slot and were skipped during fulfillment.
type PurchaseResult struct {
	Purchase    *Purchase `json:"purchase"`
	Unfulfilled []string  `json:"unfulfilled,omitempty"`
}

// Service creates and reads purchases.
type Service interface {
	Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResult, error)
	Get(ctx context.Context, id string) (*Purchase, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Purchase, error)
}

package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidSale      = errors.New("invalid_sale")
	ErrCustomerNotFound = errors.New("customer_not_found")
)

// RecordSaleRequest is what a dispenser posts after pouring a drink.
// Every field is optional: an absent customer books the sale to the
// shared guest account, a machine reference that does not resolve
// leaves the event unattributed, and an absent amount falls back to the
// recipe's price, or zero when the recipe is unknown or unnamed.
type RecordSaleRequest struct {
	RecipeName  string `json:"recipe"`
	AmountCents *int64 `json:"amount_cents"`
	Customer    string `json:"customer"`
	Machine     string `json:"machine"`
}

type DailySummaryRequest struct {
	// Range limits the summary; "today" is the only recognized value and
	// anything else returns the full history.
	Range string `form:"range"`
}

// Service records dispensed sales and derives daily totals.
type Service interface {
	Record(ctx context.Context, req RecordSaleRequest) (*SaleEvent, error)
	List(ctx context.Context) ([]SaleEvent, error)
	DailySummary(ctx context.Context, req DailySummaryRequest) ([]DailyCount, error)
}

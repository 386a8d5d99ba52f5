package domain

import (
	"context"
	"errors"
)

var (
	ErrBottleNotFound = errors.New("bottle_not_found")
	ErrInvalidBottle  = errors.New("invalid_bottle")
)

type CreateBottleRequest struct {
	BottleType string `json:"bottle_type"`
	Ingredient string `json:"ingredient" binding:"required"`
}

type UpdateBottleRequest struct {
	BottleType *string `json:"bottle_type"`
	Ingredient *string `json:"ingredient"`
}

// Service manages legacy bottles. Creation assigns the id "b<N>" where N
// is one past the highest N currently in use; gaps left by deletions are
// not refilled.
type Service interface {
	Create(ctx context.Context, req CreateBottleRequest) (*Bottle, error)
	Get(ctx context.Context, id string) (*Bottle, error)
	List(ctx context.Context) ([]Bottle, error)
	Update(ctx context.Context, id string, req UpdateBottleRequest) (*Bottle, error)
	Delete(ctx context.Context, id string) error
}

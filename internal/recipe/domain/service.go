package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrRecipeNotFound = errors.New("recipe_not_found")
	ErrInvalidRecipe  = errors.New("invalid_recipe")
)

// SyncIngredientItem is one component in the current-format sync payload.
// ID takes precedence when it resolves; otherwise the name is used and
// the ingredient is created on first sight.
type SyncIngredientItem struct {
	ID       *snowflake.ID `json:"id"`
	Name     string        `json:"name"`
	AmountML float64       `json:"amount_ml"`
}

// SyncRecipeRequest carries both payload generations. Legacy dispensers
// send flat bottle_1..bottle_12 keys; current ones send an ingredients
// list. A single request may carry both, in which case the current list
// overrides the legacy mapping per ingredient.
type SyncRecipeRequest struct {
	Name        string               `json:"name" binding:"required"`
	PriceCents  *int64               `json:"price_cents"`
	ImageURL    *string              `json:"image_url"`
	Ingredients []SyncIngredientItem `json:"ingredients"`
	Bottles     map[int]float64      `json:"-"`
}

// UnmarshalJSON collects the legacy bottle_<n> keys alongside the
// declared fields.
func (r *SyncRecipeRequest) UnmarshalJSON(data []byte) error {
	type alias SyncRecipeRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		rest, ok := strings.CutPrefix(key, "bottle_")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			continue
		}
		var amount float64
		if err := json.Unmarshal(val, &amount); err != nil {
			continue
		}
		if a.Bottles == nil {
			a.Bottles = make(map[int]float64)
		}
		a.Bottles[n] = amount
	}
	*r = SyncRecipeRequest(a)
	return nil
}

// SkippedComponent records a component the sync could not resolve. Skips
// never fail the sync; the recipe row and the resolvable components are
// kept.
type SkippedComponent struct {
	Source string `json:"source"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// SyncResult reports the state after a sync and everything that was
// dropped on the way.
type SyncResult struct {
	Recipe      *Recipe            `json:"recipe"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Skipped     []SkippedComponent `json:"skipped,omitempty"`
}

type UpdateRecipeRequest struct {
	PriceCents *int64  `json:"price_cents"`
	ImageURL   *string `json:"image_url"`
}

// RecipeDetail is a recipe together with its component lines.
type RecipeDetail struct {
	Recipe
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// Service manages recipes and the dispenser sync workflow.
type Service interface {
	Sync(ctx context.Context, req SyncRecipeRequest) (*SyncResult, error)
	Get(ctx context.Context, name string) (*RecipeDetail, error)
	GetByName(ctx context.Context, name string) (*Recipe, error)
	List(ctx context.Context) ([]RecipeDetail, error)

	// ListIngredients returns the component lines of the named recipe,
	// or every component line when name is empty.
	ListIngredients(ctx context.Context, name string) ([]RecipeIngredient, error)
	Update(ctx context.Context, name string, req UpdateRecipeRequest) (*Recipe, error)
	Delete(ctx context.Context, name string) error
}

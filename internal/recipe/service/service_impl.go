package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/cache"
	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
	"github.com/pourhouse/pourhouse/internal/observability/metrics"
	"github.com/pourhouse/pourhouse/internal/recipe/domain"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Slots       slotdomain.Repository
	Ingredients ingredientdomain.Service
	Menu        cache.MenuCache
	Metrics     *metrics.Metrics `optional:"true"`
}

type service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	slots       slotdomain.Repository
	ingredients ingredientdomain.Service
	menu        cache.MenuCache
	metrics     *metrics.Metrics
}

// New constructs the recipe service.
func New(p Params) domain.Service {
	return &service{
		db:          p.DB,
		log:         p.Log.Named("recipe.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		slots:       p.Slots,
		ingredients: p.Ingredients,
		menu:        p.Menu,
		metrics:     p.Metrics,
	}
}

// component accumulates a resolved ingredient amount during sync. Later
// sources overwrite earlier ones for the same ingredient.
type component struct {
	ingredientID snowflake.ID
	amountML     float64
	order        int
}

func (s *service) Sync(ctx context.Context, req domain.SyncRecipeRequest) (*domain.SyncResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidRecipe
	}

	result := &domain.SyncResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getOrCreate(ctx, tx, name, req)
		if err != nil {
			return err
		}
		result.Recipe = recipe

		desired := make(map[snowflake.ID]component)
		order := 0

		// Legacy payload first so the current list can override it.
		for _, bottle := range sortedBottles(req.Bottles) {
			amount := req.Bottles[bottle]
			key := fmt.Sprintf("bottle_%d", bottle)
			if amount <= 0 {
				result.Skipped = append(result.Skipped, domain.SkippedComponent{
					Source: "legacy", Key: key, Reason: "non_positive_amount",
				})
				continue
			}
			slot, err := s.slots.FindBySlotNumber(ctx, tx, bottle)
			if err != nil {
				return err
			}
			if slot == nil {
				result.Skipped = append(result.Skipped, domain.SkippedComponent{
					Source: "legacy", Key: key, Reason: "slot_not_found",
				})
				continue
			}
			if strings.TrimSpace(slot.LiquidName) == "" {
				result.Skipped = append(result.Skipped, domain.SkippedComponent{
					Source: "legacy", Key: key, Reason: "slot_has_no_liquid",
				})
				continue
			}
			ingredient, err := s.ingredients.GetOrCreateByName(ctx, tx, slot.LiquidName)
			if err != nil {
				return err
			}
			order++
			desired[ingredient.ID] = component{ingredient.ID, amount, order}
		}

		for i, item := range req.Ingredients {
			key := fmt.Sprintf("ingredients[%d]", i)
			if item.AmountML <= 0 {
				result.Skipped = append(result.Skipped, domain.SkippedComponent{
					Source: "ingredients", Key: key, Reason: "non_positive_amount",
				})
				continue
			}
			ingredient, err := s.resolveItem(ctx, tx, item)
			if err != nil {
				return err
			}
			if ingredient == nil {
				result.Skipped = append(result.Skipped, domain.SkippedComponent{
					Source: "ingredients", Key: key, Reason: "unresolved_ingredient",
				})
				continue
			}
			prev, seen := desired[ingredient.ID]
			ord := order + 1
			if seen {
				ord = prev.order
			} else {
				order++
			}
			desired[ingredient.ID] = component{ingredient.ID, item.AmountML, ord}
		}

		rows := make([]domain.RecipeIngredient, 0, len(desired))
		for _, c := range desired {
			rows = append(rows, domain.RecipeIngredient{
				RecipeName:   name,
				IngredientID: c.ingredientID,
				AmountML:     c.amountML,
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			return desired[rows[i].IngredientID].order < desired[rows[j].IngredientID].order
		})
		// Ids are assigned in component order so id-ordered reads keep it.
		for i := range rows {
			rows[i].ID = s.genID.Generate()
		}

		if err := s.repo.ReplaceIngredients(ctx, tx, name, rows); err != nil {
			return err
		}

		result.Ingredients, err = s.repo.ListIngredients(ctx, tx, name)
		return err
	})
	if err != nil {
		s.log.Error("recipe sync failed", zap.String("recipe", name), zap.Error(err))
		return nil, err
	}

	s.menu.Invalidate(name)

	for _, skip := range result.Skipped {
		s.metrics.RecordSyncSkipped(ctx, skip.Source, 1)
		s.log.Warn("skipped recipe component",
			zap.String("recipe", name),
			zap.String("source", skip.Source),
			zap.String("key", skip.Key),
			zap.String("reason", skip.Reason),
		)
	}
	return result, nil
}

func (s *service) getOrCreate(ctx context.Context, tx *gorm.DB, name string, req domain.SyncRecipeRequest) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		recipe = &domain.Recipe{
			Name:       name,
			PriceCents: domain.DefaultPriceCents,
		}
		if req.PriceCents != nil {
			recipe.PriceCents = *req.PriceCents
		}
		if req.ImageURL != nil {
			recipe.ImageURL = *req.ImageURL
		}
		return recipe, s.repo.Insert(ctx, tx, recipe)
	}

	changed := false
	if req.PriceCents != nil && recipe.PriceCents != *req.PriceCents {
		recipe.PriceCents = *req.PriceCents
		changed = true
	}
	if req.ImageURL != nil && recipe.ImageURL != *req.ImageURL {
		recipe.ImageURL = *req.ImageURL
		changed = true
	}
	if changed {
		return recipe, s.repo.Update(ctx, tx, recipe)
	}
	return recipe, nil
}

func (s *service) resolveItem(ctx context.Context, tx *gorm.DB, item domain.SyncIngredientItem) (*ingredientdomain.Ingredient, error) {
	if item.ID != nil {
		ingredient, err := s.ingredients.GetByID(ctx, *item.ID)
		if err == nil {
			return ingredient, nil
		}
		if err != ingredientdomain.ErrIngredientNotFound {
			return nil, err
		}
		// Unknown id falls through to the name.
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, nil
	}
	return s.ingredients.GetOrCreateByName(ctx, tx, item.Name)
}

func (s *service) Get(ctx context.Context, name string) (*domain.RecipeDetail, error) {
	if detail, ok := s.menu.GetRecipe(name); ok {
		return detail, nil
	}
	recipe, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListIngredients(ctx, s.db, recipe.Name)
	if err != nil {
		return nil, err
	}
	detail := &domain.RecipeDetail{Recipe: *recipe, Ingredients: rows}
	s.menu.SetRecipe(recipe.Name, detail)
	return detail, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*domain.Recipe, error) {
	recipe, err := s.repo.FindByName(ctx, s.db, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *service) List(ctx context.Context) ([]domain.RecipeDetail, error) {
	if menu, ok := s.menu.GetMenu(); ok {
		return menu, nil
	}
	recipes, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	details := make([]domain.RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		rows, err := s.repo.ListIngredients(ctx, s.db, recipe.Name)
		if err != nil {
			return nil, err
		}
		details = append(details, domain.RecipeDetail{Recipe: recipe, Ingredients: rows})
	}
	s.menu.SetMenu(details)
	return details, nil
}

func (s *service) ListIngredients(ctx context.Context, name string) ([]domain.RecipeIngredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.repo.ListAllIngredients(ctx, s.db)
	}
	return s.repo.ListIngredients(ctx, s.db, name)
}

func (s *service) Update(ctx context.Context, name string, req domain.UpdateRecipeRequest) (*domain.Recipe, error) {
	recipe, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if req.PriceCents != nil {
		recipe.PriceCents = *req.PriceCents
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if err := s.repo.Update(ctx, s.db, recipe); err != nil {
		return nil, err
	}
	s.menu.Invalidate(recipe.Name)
	return recipe, nil
}

func (s *service) Delete(ctx context.Context, name string) error {
	recipe, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, recipe.Name); err != nil {
		return err
	}
	s.menu.Invalidate(recipe.Name)
	return nil
}

func sortedBottles(bottles map[int]float64) []int {
	keys := make([]int, 0, len(bottles))
	for k := range bottles {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/cache"
	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
	ingredientrepo "github.com/pourhouse/pourhouse/internal/ingredient/repository"
	ingredientservice "github.com/pourhouse/pourhouse/internal/ingredient/service"
	"github.com/pourhouse/pourhouse/internal/recipe/domain"
	reciperepo "github.com/pourhouse/pourhouse/internal/recipe/repository"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
	slotrepo "github.com/pourhouse/pourhouse/internal/slot/repository"
)

func setupRecipeService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&slotdomain.BottleSlot{},
		&ingredientdomain.Ingredient{},
		&domain.Recipe{},
		&domain.RecipeIngredient{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	ingredients := ingredientservice.New(ingredientservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  ingredientrepo.Provide(),
	})
	svc := New(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Repo:        reciperepo.Provide(),
		Slots:       slotrepo.Provide(),
		Ingredients: ingredients,
		Menu:        cache.NewMenuCache(),
	})
	return svc, db, node
}

func seedSlot(t *testing.T, db *gorm.DB, node *snowflake.Node, number int, liquid string) slotdomain.BottleSlot {
	t.Helper()
	slot := slotdomain.BottleSlot{
		ID:              node.Generate(),
		SlotNumber:      number,
		LiquidName:      liquid,
		CurrentVolumeML: 500,
		CapacityML:      1000,
		IsEnabled:       true,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func TestSync_LegacyBottleKeys(t *testing.T) {
	svc, db, node := setupRecipeService(t)
	ctx := context.Background()

	seedSlot(t, db, node, 3, "Vodka")

	result, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name:    "Moscow Mule",
		Bottles: map[int]float64{3: 50},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Recipe)
	assert.Equal(t, "Moscow Mule", result.Recipe.Name)
	assert.Equal(t, domain.DefaultPriceCents, result.Recipe.PriceCents)
	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, 50.0, result.Ingredients[0].AmountML)
	require.NotNil(t, result.Ingredients[0].Ingredient)
	assert.Equal(t, "Vodka", result.Ingredients[0].Ingredient.Name)
	assert.Empty(t, result.Skipped)
}

func TestSync_SkipsUnresolvableComponents(t *testing.T) {
	svc, db, node := setupRecipeService(t)
	ctx := context.Background()

	seedSlot(t, db, node, 1, "Gin")
	seedSlot(t, db, node, 2, "")

	result, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Oddball",
		Bottles: map[int]float64{
			1: 40, // resolves
			2: 30, // slot has no liquid
			7: 20, // no such slot
			4: -5, // non-positive amount
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 1)

	reasons := map[string]string{}
	for _, skip := range result.Skipped {
		assert.Equal(t, "legacy", skip.Source)
		reasons[skip.Key] = skip.Reason
	}
	assert.Equal(t, map[string]string{
		"bottle_2": "slot_has_no_liquid",
		"bottle_7": "slot_not_found",
		"bottle_4": "non_positive_amount",
	}, reasons)
}

func TestSync_CurrentListOverridesLegacy(t *testing.T) {
	svc, db, node := setupRecipeService(t)
	ctx := context.Background()

	seedSlot(t, db, node, 1, "Lime Juice")

	result, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name:    "Gimlet",
		Bottles: map[int]float64{1: 15},
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Lime Juice", AmountML: 20},
			{Name: "Gin", AmountML: 60},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 2)

	amounts := map[string]float64{}
	for _, row := range result.Ingredients {
		require.NotNil(t, row.Ingredient)
		amounts[row.Ingredient.Name] = row.AmountML
	}
	// The current list wins over the legacy key for the same ingredient.
	assert.Equal(t, 20.0, amounts["Lime Juice"])
	assert.Equal(t, 60.0, amounts["Gin"])
}

func TestSync_ReplaceIsFull(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Spritz",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Prosecco", AmountML: 90},
			{Name: "Aperol", AmountML: 60},
		},
	})
	require.NoError(t, err)

	// Re-sync with one component; the other must be gone.
	result, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Spritz",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Prosecco", AmountML: 90},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "Prosecco", result.Ingredients[0].Ingredient.Name)
}

func TestSync_IsIdempotent(t *testing.T) {
	svc, db, _ := setupRecipeService(t)
	ctx := context.Background()

	req := domain.SyncRecipeRequest{
		Name: "Negroni",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Gin", AmountML: 30},
			{Name: "Campari", AmountML: 30},
			{Name: "Vermouth", AmountML: 30},
		},
	}

	first, err := svc.Sync(ctx, req)
	require.NoError(t, err)
	second, err := svc.Sync(ctx, req)
	require.NoError(t, err)

	require.Len(t, second.Ingredients, 3)
	for i := range second.Ingredients {
		assert.Equal(t, first.Ingredients[i].IngredientID, second.Ingredients[i].IngredientID)
		assert.Equal(t, first.Ingredients[i].AmountML, second.Ingredients[i].AmountML)
	}

	// No duplicate ingredient rows were created on the second pass.
	var count int64
	require.NoError(t, db.Model(&ingredientdomain.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSync_ResolvesItemByIDThenName(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()

	first, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Daiquiri",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Rum", AmountML: 60},
		},
	})
	require.NoError(t, err)
	rumID := first.Ingredients[0].IngredientID

	// A stale id falls back to the name instead of failing the sync.
	staleID := snowflake.ID(999999999)
	result, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Daiquiri",
		Ingredients: []domain.SyncIngredientItem{
			{ID: &rumID, AmountML: 45},
			{ID: &staleID, Name: "Lime Juice", AmountML: 25},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, rumID, result.Ingredients[0].IngredientID)
	assert.Empty(t, result.Skipped)
}

func TestSync_MissingNameRejected(t *testing.T) {
	svc, _, _ := setupRecipeService(t)

	_, err := svc.Sync(context.Background(), domain.SyncRecipeRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

func TestUpdate_InvalidatesMenu(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Mojito",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Rum", AmountML: 50},
		},
	})
	require.NoError(t, err)

	// Prime the caches.
	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, "Mojito")
	require.NoError(t, err)

	newPrice := int64(450)
	_, err = svc.Update(ctx, "Mojito", domain.UpdateRecipeRequest{PriceCents: &newPrice})
	require.NoError(t, err)

	detail, err := svc.Get(ctx, "Mojito")
	require.NoError(t, err)
	assert.Equal(t, int64(450), detail.PriceCents)

	menu, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, int64(450), menu[0].PriceCents)
}

func TestDelete_RemovesRecipeAndLines(t *testing.T) {
	svc, db, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Paloma",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Tequila", AmountML: 50},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "Paloma"))

	_, err = svc.Get(ctx, "Paloma")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var lines int64
	require.NoError(t, db.Model(&domain.RecipeIngredient{}).Where("recipe_name = ?", "Paloma").Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestListIngredients_AllAndFiltered(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Daiquiri",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Rum", AmountML: 60},
			{Name: "Lime Juice", AmountML: 25},
		},
	})
	require.NoError(t, err)
	_, err = svc.Sync(ctx, domain.SyncRecipeRequest{
		Name: "Screwdriver",
		Ingredients: []domain.SyncIngredientItem{
			{Name: "Vodka", AmountML: 50},
		},
	})
	require.NoError(t, err)

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	daiquiri, err := svc.ListIngredients(ctx, "Daiquiri")
	require.NoError(t, err)
	require.Len(t, daiquiri, 2)
	require.NotNil(t, daiquiri[0].Ingredient)
	assert.Equal(t, "Rum", daiquiri[0].Ingredient.Name)
}

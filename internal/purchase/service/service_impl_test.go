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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
	"github.com/pourhouse/pourhouse/internal/purchase/domain"
	purchaserepo "github.com/pourhouse/pourhouse/internal/purchase/repository"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
	slotrepo "github.com/pourhouse/pourhouse/internal/slot/repository"
	walletdomain "github.com/pourhouse/pourhouse/internal/wallet/domain"
)

type recipeStub struct {
	detail *recipedomain.RecipeDetail
}

func (s *recipeStub) Sync(context.Context, recipedomain.SyncRecipeRequest) (*recipedomain.SyncResult, error) {
	return nil, nil
}
func (s *recipeStub) Get(_ context.Context, name string) (*recipedomain.RecipeDetail, error) {
	if s.detail == nil || s.detail.Name != name {
		return nil, recipedomain.ErrRecipeNotFound
	}
	return s.detail, nil
}
func (s *recipeStub) GetByName(context.Context, string) (*recipedomain.Recipe, error) {
	return nil, recipedomain.ErrRecipeNotFound
}
func (s *recipeStub) List(context.Context) ([]recipedomain.RecipeDetail, error) { return nil, nil }
func (s *recipeStub) ListIngredients(context.Context, string) ([]recipedomain.RecipeIngredient, error) {
	return nil, nil
}
func (s *recipeStub) Update(context.Context, string, recipedomain.UpdateRecipeRequest) (*recipedomain.Recipe, error) {
	return nil, nil
}
func (s *recipeStub) Delete(context.Context, string) error { return nil }

type walletStub struct {
	charges []int64
	err     error
}

func (s *walletStub) Topup(context.Context, snowflake.ID, walletdomain.TopupRequest) (*walletdomain.LedgerEntry, error) {
	return nil, nil
}
func (s *walletStub) Statement(context.Context, snowflake.ID) (*walletdomain.Statement, error) {
	return nil, nil
}
func (s *walletStub) Charge(_ context.Context, _ *gorm.DB, _ snowflake.ID, amountCents int64, _ string) (*walletdomain.LedgerEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.charges = append(s.charges, amountCents)
	return &walletdomain.LedgerEntry{AmountCents: -amountCents}, nil
}

// accountStub knows exactly one user.
type accountStub struct {
	user accountdomain.User
}

func (s *accountStub) Create(context.Context, accountdomain.CreateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) List(context.Context) ([]accountdomain.User, error) { return nil, nil }
func (s *accountStub) GetByID(_ context.Context, id snowflake.ID) (accountdomain.User, error) {
	if s.user.ID != 0 && s.user.ID == id {
		return s.user, nil
	}
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) GetByEmail(context.Context, string) (accountdomain.User, error) {
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) Update(context.Context, accountdomain.UpdateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) Delete(context.Context, string) error { return nil }
func (s *accountStub) GetOrCreateGuest(context.Context) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}

func setupPurchaseService(t *testing.T, wallet *walletStub) (domain.Service, *gorm.DB, *snowflake.Node, *recipeStub, *accountStub) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&slotdomain.BottleSlot{},
		&domain.Purchase{},
		&domain.PurchaseItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	recipes := &recipeStub{}
	accounts := &accountStub{}
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     purchaserepo.Provide(),
		Recipes:  recipes,
		Accounts: accounts,
		Slots:    slotrepo.Provide(),
		Wallet:   wallet,
	})
	return svc, db, node, recipes, accounts
}

func seedSlot(t *testing.T, db *gorm.DB, node *snowflake.Node, liquid string, volume float64) slotdomain.BottleSlot {
	t.Helper()
	slot := slotdomain.BottleSlot{
		ID:              node.Generate(),
		SlotNumber:      int(node.Generate() % 10000),
		LiquidName:      liquid,
		CurrentVolumeML: volume,
		CapacityML:      1000,
		IsEnabled:       true,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func negroniDetail(node *snowflake.Node) *recipedomain.RecipeDetail {
	gin := &ingredientdomain.Ingredient{ID: node.Generate(), Name: "Gin"}
	campari := &ingredientdomain.Ingredient{ID: node.Generate(), Name: "Campari"}
	return &recipedomain.RecipeDetail{
		Recipe: recipedomain.Recipe{Name: "Negroni", PriceCents: 900},
		Ingredients: []recipedomain.RecipeIngredient{
			{IngredientID: gin.ID, AmountML: 30, Ingredient: gin},
			{IngredientID: campari.ID, AmountML: 30, Ingredient: campari},
		},
	}
}

func TestCreate_WalletPurchasePoursAndCharges(t *testing.T) {
	wallet := &walletStub{}
	svc, db, node, recipes, accounts := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	ginSlot := seedSlot(t, db, node, "Gin", 500)
	seedSlot(t, db, node, "Campari", 500)

	accounts.user = accountdomain.User{ID: node.Generate(), Email: "alice@example.com"}
	result, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName:    "Negroni",
		Quantity:      2,
		PaymentMethod: domain.PaymentWallet,
		UserID:        accounts.user.ID.String(),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Unfulfilled)
	assert.Equal(t, int64(1800), result.Purchase.AmountPaidCents)
	assert.Equal(t, int64(900), result.Purchase.PriceAtPurchaseCents)
	assert.Equal(t, domain.PaymentWallet, result.Purchase.PaymentMethod)
	assert.Equal(t, []int64{1800}, wallet.charges)
	require.NotNil(t, result.Purchase.UserID)
	assert.Equal(t, accounts.user.ID, *result.Purchase.UserID)
	require.Len(t, result.Purchase.Items, 2)

	var slot slotdomain.BottleSlot
	require.NoError(t, db.First(&slot, "id = ?", ginSlot.ID).Error)
	assert.Equal(t, 440.0, slot.CurrentVolumeML) // 500 - 30*2
}

func TestCreate_BottleListDrivesPouring(t *testing.T) {
	wallet := &walletStub{}
	svc, db, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	ginSlot := seedSlot(t, db, node, "Gin", 30)
	phantom := node.Generate() // never loaded

	result, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Negroni",
		UserID:     "424242", // no such account, tolerated
		Bottles: []domain.PurchaseBottleRequest{
			{SlotID: ginSlot.ID, VolumeML: 50},
			{SlotID: phantom, VolumeML: 25},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result.Purchase.UserID)
	assert.Equal(t, []string{phantom.String()}, result.Unfulfilled)
	require.Len(t, result.Purchase.Items, 1)
	assert.Equal(t, "Gin", result.Purchase.Items[0].IngredientName)
	assert.Equal(t, 50.0, result.Purchase.Items[0].AmountML)

	// Asked for more than the slot held; it empties, never goes negative.
	var slot slotdomain.BottleSlot
	require.NoError(t, db.First(&slot, "id = ?", ginSlot.ID).Error)
	assert.Equal(t, 0.0, slot.CurrentVolumeML)
}

func TestCreate_DefaultsAndOverrides(t *testing.T) {
	wallet := &walletStub{}
	svc, db, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	seedSlot(t, db, node, "Gin", 500)
	seedSlot(t, db, node, "Campari", 500)

	result, err := svc.Create(ctx, domain.CreatePurchaseRequest{RecipeName: "Negroni"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, result.Purchase.PaymentMethod)
	assert.Equal(t, domain.StatusCompleted, result.Purchase.Status)
	assert.Equal(t, 1, result.Purchase.Quantity)
	assert.Equal(t, int64(900), result.Purchase.AmountPaidCents)
	assert.Nil(t, result.Purchase.UserID)
	assert.Empty(t, wallet.charges)

	paid := int64(750)
	price := int64(800)
	result, err = svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName:           "Negroni",
		Status:               domain.StatusPending,
		AmountPaidCents:      &paid,
		PriceAtPurchaseCents: &price,
		Metadata:             datatypes.JSONMap{"terminal": "kiosk-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Purchase.Status)
	assert.Equal(t, int64(750), result.Purchase.AmountPaidCents)
	assert.Equal(t, int64(800), result.Purchase.PriceAtPurchaseCents)
	assert.Equal(t, "kiosk-2", result.Purchase.Metadata["terminal"])
}

func TestCreate_MissingSlotIsReportedNotFailed(t *testing.T) {
	wallet := &walletStub{}
	svc, db, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	seedSlot(t, db, node, "Gin", 500)
	// No Campari slot loaded.

	result, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Negroni",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Campari"}, result.Unfulfilled)
	assert.Equal(t, domain.StatusCompleted, result.Purchase.Status)
	require.Len(t, result.Purchase.Items, 1)
}

func TestCreate_DrainFloorsAtZero(t *testing.T) {
	wallet := &walletStub{}
	svc, db, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	ginSlot := seedSlot(t, db, node, "Gin", 10) // less than one pour
	seedSlot(t, db, node, "Campari", 500)

	_, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Negroni",
	})
	require.NoError(t, err)

	var slot slotdomain.BottleSlot
	require.NoError(t, db.First(&slot, "id = ?", ginSlot.ID).Error)
	assert.Equal(t, 0.0, slot.CurrentVolumeML)
}

func TestCreate_InsufficientFundsRollsBack(t *testing.T) {
	wallet := &walletStub{err: walletdomain.ErrInsufficientFunds}
	svc, db, node, recipes, accounts := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	ginSlot := seedSlot(t, db, node, "Gin", 500)
	seedSlot(t, db, node, "Campari", 500)

	accounts.user = accountdomain.User{ID: node.Generate()}
	_, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName:    "Negroni",
		PaymentMethod: domain.PaymentWallet,
		UserID:        accounts.user.ID.String(),
	})
	assert.ErrorIs(t, err, walletdomain.ErrInsufficientFunds)

	var purchases int64
	require.NoError(t, db.Model(&domain.Purchase{}).Count(&purchases).Error)
	assert.Zero(t, purchases)

	var slot slotdomain.BottleSlot
	require.NoError(t, db.First(&slot, "id = ?", ginSlot.ID).Error)
	assert.Equal(t, 500.0, slot.CurrentVolumeML)
}

func TestCreate_CashSkipsWallet(t *testing.T) {
	wallet := &walletStub{err: walletdomain.ErrInsufficientFunds}
	svc, db, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)

	seedSlot(t, db, node, "Gin", 500)
	seedSlot(t, db, node, "Campari", 500)

	result, err := svc.Create(context.Background(), domain.CreatePurchaseRequest{
		RecipeName:    "Negroni",
		PaymentMethod: domain.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, result.Purchase.PaymentMethod)
	assert.Empty(t, wallet.charges)
}

func TestCreate_InvalidInput(t *testing.T) {
	wallet := &walletStub{}
	svc, _, node, recipes, _ := setupPurchaseService(t, wallet)
	recipes.detail = negroniDetail(node)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Negroni",
		Quantity:   -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchase)

	_, err = svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName:    "Negroni",
		PaymentMethod: "barter",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)

	_, err = svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Negroni",
		Status:     "limbo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchase)

	// Wallet payment with nobody to debit.
	_, err = svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName:    "Negroni",
		PaymentMethod: domain.PaymentWallet,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchase)

	_, err = svc.Create(ctx, domain.CreatePurchaseRequest{
		RecipeName: "Unknown",
	})
	assert.ErrorIs(t, err, recipedomain.ErrRecipeNotFound)
}

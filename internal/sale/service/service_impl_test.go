package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/clock"
	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	"github.com/pourhouse/pourhouse/internal/sale/domain"
	salerepo "github.com/pourhouse/pourhouse/internal/sale/repository"
)

// -- Stubs --

type recipeStub struct {
	recipes map[string]*recipedomain.Recipe
}

func (s *recipeStub) Sync(context.Context, recipedomain.SyncRecipeRequest) (*recipedomain.SyncResult, error) {
	return nil, nil
}
func (s *recipeStub) Get(ctx context.Context, name string) (*recipedomain.RecipeDetail, error) {
	recipe, err := s.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return &recipedomain.RecipeDetail{Recipe: *recipe}, nil
}
func (s *recipeStub) GetByName(_ context.Context, name string) (*recipedomain.Recipe, error) {
	if recipe, ok := s.recipes[name]; ok {
		return recipe, nil
	}
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

type accountStub struct {
	users      map[snowflake.ID]accountdomain.User
	emails     map[string]accountdomain.User
	guest      accountdomain.User
	guestCalls int
}

func (s *accountStub) Create(context.Context, accountdomain.CreateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) List(context.Context) ([]accountdomain.User, error) { return nil, nil }
func (s *accountStub) GetByID(_ context.Context, id snowflake.ID) (accountdomain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) GetByEmail(_ context.Context, email string) (accountdomain.User, error) {
	if user, ok := s.emails[email]; ok {
		return user, nil
	}
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) Update(context.Context, accountdomain.UpdateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) Delete(context.Context, string) error { return nil }
func (s *accountStub) GetOrCreateGuest(context.Context) (accountdomain.User, error) {
	s.guestCalls++
	return s.guest, nil
}

type machineStub struct {
	machines map[string]machinedomain.Machine
}

func (s *machineStub) Create(context.Context, machinedomain.CreateMachineRequest) (machinedomain.Machine, error) {
	return machinedomain.Machine{}, nil
}
func (s *machineStub) List(context.Context) ([]machinedomain.Machine, error) { return nil, nil }
func (s *machineStub) GetByID(context.Context, string) (machinedomain.Machine, error) {
	return machinedomain.Machine{}, nil
}
func (s *machineStub) Update(context.Context, machinedomain.UpdateMachineRequest) (machinedomain.Machine, error) {
	return machinedomain.Machine{}, nil
}
func (s *machineStub) Delete(context.Context, string) error { return nil }
func (s *machineStub) ResolveOrCreate(ctx context.Context, ref string) (machinedomain.Machine, error) {
	return s.GetByMachineID(ctx, ref)
}
func (s *machineStub) GetByMachineID(_ context.Context, machineID string) (machinedomain.Machine, error) {
	if machine, ok := s.machines[machineID]; ok {
		return machine, nil
	}
	return machinedomain.Machine{}, machinedomain.ErrNotFound
}

// -- Tests --

func setupSaleService(t *testing.T, fc *clock.FakeClock) (domain.Service, *gorm.DB, *accountStub, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SaleEvent{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	guestID := node.Generate()
	customerID := node.Generate()
	accounts := &accountStub{
		guest: accountdomain.User{ID: guestID, Email: "guest@local"},
		users: map[snowflake.ID]accountdomain.User{
			customerID: {ID: customerID, Email: "alice@example.com"},
		},
		emails: map[string]accountdomain.User{
			"alice@example.com": {ID: customerID, Email: "alice@example.com"},
		},
	}

	machineRowID := node.Generate()
	machines := &machineStub{
		machines: map[string]machinedomain.Machine{
			"bar-01": {ID: machineRowID, MachineID: "bar-01"},
		},
	}

	recipes := &recipeStub{
		recipes: map[string]*recipedomain.Recipe{
			"Negroni": {Name: "Negroni", PriceCents: 900},
		},
	}

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     salerepo.Provide(),
		Recipes:  recipes,
		Accounts: accounts,
		Machines: machines,
		Clock:    fc,
	})
	return svc, db, accounts, node
}

func TestRecord_KnownRecipeAndCustomer(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	svc, _, accounts, _ := setupSaleService(t, fc)

	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName: "Negroni",
		Customer:   "alice@example.com",
		Machine:    "bar-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(900), event.AmountCents)
	assert.NotNil(t, event.MachineID)
	assert.Equal(t, fc.Now(), event.OccurredAt)
	assert.Zero(t, accounts.guestCalls)
}

func TestRecord_UnknownRecipeBooksAtZero(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, _, _ := setupSaleService(t, fc)

	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName: "Mystery Drink",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mystery Drink", event.RecipeName)
	assert.Zero(t, event.AmountCents)
}

func TestRecord_NoRecipeIsAccepted(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, accounts, _ := setupSaleService(t, fc)

	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{})
	require.NoError(t, err)
	assert.Empty(t, event.RecipeName)
	assert.Zero(t, event.AmountCents)
	assert.Equal(t, accounts.guest.ID, event.UserID)
}

func TestRecord_ExplicitAmountWins(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, _, _ := setupSaleService(t, fc)

	amount := int64(450)
	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName:  "Negroni",
		AmountCents: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(450), event.AmountCents)

	negative := int64(-1)
	_, err = svc.Record(context.Background(), domain.RecordSaleRequest{
		AmountCents: &negative,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSale)
}

func TestRecord_EmptyCustomerBooksToGuest(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, accounts, _ := setupSaleService(t, fc)

	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName: "Negroni",
	})
	require.NoError(t, err)
	assert.Equal(t, accounts.guest.ID, event.UserID)
	assert.Equal(t, 1, accounts.guestCalls)
}

func TestRecord_UnknownCustomerIsCallerError(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, _, _ := setupSaleService(t, fc)

	_, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName: "Negroni",
		Customer:   "nobody@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRecord_UnknownMachineNeverBlocksSale(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	svc, _, _, _ := setupSaleService(t, fc)

	event, err := svc.Record(context.Background(), domain.RecordSaleRequest{
		RecipeName: "Negroni",
		Machine:    "unregistered-99",
	})
	require.NoError(t, err)
	assert.Nil(t, event.MachineID)
}

func TestDailySummary_GroupsByDay(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC))
	svc, _, _, _ := setupSaleService(t, fc)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, domain.RecordSaleRequest{RecipeName: "Negroni"})
		require.NoError(t, err)
	}
	fc.Advance(time.Hour) // crosses midnight
	_, err := svc.Record(ctx, domain.RecordSaleRequest{RecipeName: "Negroni"})
	require.NoError(t, err)

	days, err := svc.DailySummary(ctx, domain.DailySummaryRequest{})
	require.NoError(t, err)
	require.Len(t, days, 2)
	// Most recent day first.
	assert.Equal(t, "2026-03-15", days[0].Day)
	assert.Equal(t, int64(1), days[0].Count)
	assert.Equal(t, "2026-03-14", days[1].Day)
	assert.Equal(t, int64(3), days[1].Count)
	assert.Equal(t, int64(2700), days[1].TotalCents)

	// range=today only includes the current day.
	today, err := svc.DailySummary(ctx, domain.DailySummaryRequest{Range: "today"})
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "2026-03-15", today[0].Day)
}

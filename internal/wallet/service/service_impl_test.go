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

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/wallet/domain"
	walletrepo "github.com/pourhouse/pourhouse/internal/wallet/repository"
)

type accountStub struct {
	users map[snowflake.ID]accountdomain.User
	db    *gorm.DB
}

func (s *accountStub) Create(context.Context, accountdomain.CreateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) List(context.Context) ([]accountdomain.User, error) { return nil, nil }
func (s *accountStub) GetByID(_ context.Context, id snowflake.ID) (accountdomain.User, error) {
	var user accountdomain.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return accountdomain.User{}, accountdomain.ErrNotFound
	}
	return user, nil
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

func setupWalletService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.User{}, &domain.LedgerEntry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     walletrepo.Provide(),
		Accounts: &accountStub{db: db},
	})
	return svc, db, node
}

func seedUser(t *testing.T, db *gorm.DB, node *snowflake.Node, balance int64) accountdomain.User {
	t.Helper()
	user := accountdomain.User{
		ID:                 node.Generate(),
		DisplayName:        "Alice",
		Email:              fmt.Sprintf("alice-%d@example.com", node.Generate()),
		PasswordHash:       "x",
		Role:               "customer",
		WalletBalanceCents: balance,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestTopup_CreditsAndWritesLedger(t *testing.T) {
	svc, db, node := setupWalletService(t)
	ctx := context.Background()
	user := seedUser(t, db, node, 100)

	entry, err := svc.Topup(ctx, user.ID, domain.TopupRequest{AmountCents: 500, Reference: "cash-desk"})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeTopup, entry.Type)
	assert.Equal(t, int64(500), entry.AmountCents)
	assert.Equal(t, int64(600), entry.BalanceAfterCents)

	statement, err := svc.Statement(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), statement.BalanceCents)
	require.Len(t, statement.Entries, 1)
}

func TestTopup_RejectsNonPositiveAmount(t *testing.T) {
	svc, db, node := setupWalletService(t)
	user := seedUser(t, db, node, 0)

	_, err := svc.Topup(context.Background(), user.ID, domain.TopupRequest{AmountCents: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.Topup(context.Background(), user.ID, domain.TopupRequest{AmountCents: -50})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTopup_UnknownAccount(t *testing.T) {
	svc, _, node := setupWalletService(t)

	_, err := svc.Topup(context.Background(), node.Generate(), domain.TopupRequest{AmountCents: 100})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCharge_DebitsExactlyOnce(t *testing.T) {
	svc, db, node := setupWalletService(t)
	ctx := context.Background()
	user := seedUser(t, db, node, 1000)

	entry, err := svc.Charge(ctx, db, user.ID, 400, "purchase:1")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCharge, entry.Type)
	assert.Equal(t, int64(-400), entry.AmountCents)
	assert.Equal(t, int64(600), entry.BalanceAfterCents)

	var stored accountdomain.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, int64(600), stored.WalletBalanceCents)
}

func TestCharge_InsufficientFundsLeavesBalance(t *testing.T) {
	svc, db, node := setupWalletService(t)
	ctx := context.Background()
	user := seedUser(t, db, node, 300)

	_, err := svc.Charge(ctx, db, user.ID, 400, "purchase:2")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var stored accountdomain.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, int64(300), stored.WalletBalanceCents)

	var entries int64
	require.NoError(t, db.Model(&domain.LedgerEntry{}).Count(&entries).Error)
	assert.Zero(t, entries)
}

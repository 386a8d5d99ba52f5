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

	"github.com/pourhouse/pourhouse/internal/account/domain"
	accountrepo "github.com/pourhouse/pourhouse/internal/account/repository"
	"github.com/pourhouse/pourhouse/internal/config"
)

func setupAccountService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Cfg:   config.Config{GuestEmail: "guest@pourhouse.local"},
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  accountrepo.Provide(),
	})
}

func TestUser_RetrieveUpdateDelete(t *testing.T) {
	svc := setupAccountService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateUserRequest{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "pw123456",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)

	updated, err := svc.Update(ctx, domain.UpdateUserRequest{
		ID:          created.ID.String(),
		DisplayName: "Alice B",
		Email:       "alice.b@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.DisplayName)
	assert.Equal(t, "alice.b@example.com", updated.Email)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUser_UpdateUnknownAndBadID(t *testing.T) {
	svc := setupAccountService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.UpdateUserRequest{ID: "999999999", DisplayName: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, domain.UpdateUserRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = svc.Delete(ctx, "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

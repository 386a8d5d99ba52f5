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
	"github.com/pourhouse/pourhouse/internal/auth/domain"
	"github.com/pourhouse/pourhouse/internal/auth/password"
	authrepo "github.com/pourhouse/pourhouse/internal/auth/repository"
	"github.com/pourhouse/pourhouse/internal/config"
	ownerdomain "github.com/pourhouse/pourhouse/internal/owner/domain"
	ownerrepo "github.com/pourhouse/pourhouse/internal/owner/repository"
)

type accountStub struct {
	byEmail map[string]accountdomain.User
	created []accountdomain.CreateUserRequest
	err     error
}

func (s *accountStub) Create(_ context.Context, req accountdomain.CreateUserRequest) (accountdomain.User, error) {
	if s.err != nil {
		return accountdomain.User{}, s.err
	}
	s.created = append(s.created, req)
	return accountdomain.User{Email: req.Email, DisplayName: req.DisplayName, Role: req.Role}, nil
}
func (s *accountStub) List(context.Context) ([]accountdomain.User, error) { return nil, nil }
func (s *accountStub) GetByID(context.Context, snowflake.ID) (accountdomain.User, error) {
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) GetByEmail(_ context.Context, email string) (accountdomain.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return accountdomain.User{}, accountdomain.ErrNotFound
}
func (s *accountStub) Update(context.Context, accountdomain.UpdateUserRequest) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}
func (s *accountStub) Delete(context.Context, string) error { return nil }
func (s *accountStub) GetOrCreateGuest(context.Context) (accountdomain.User, error) {
	return accountdomain.User{}, nil
}

func setupAuthService(t *testing.T, accounts *accountStub) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ownerdomain.Owner{}, &domain.Session{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Cfg:      config.Config{SessionTTLHours: 24},
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Accounts: accounts,
		Owners:   ownerrepo.Provide(),
		Sessions: authrepo.ProvideSessions(),
	})
	return svc, db, node
}

func seedOwner(t *testing.T, db *gorm.DB, node *snowflake.Node, email, storedPassword string) ownerdomain.Owner {
	t.Helper()
	owner := ownerdomain.Owner{
		ID:           node.Generate(),
		Name:         "Bar Owner",
		Email:        email,
		PasswordHash: storedPassword,
	}
	require.NoError(t, db.Create(&owner).Error)
	return owner
}

func TestLogin_CustomerWithHashedPassword(t *testing.T) {
	hash, err := password.Hash("s3cret")
	require.NoError(t, err)

	accounts := &accountStub{byEmail: map[string]accountdomain.User{
		"alice@example.com": {
			ID:           snowflake.ID(42),
			Email:        "alice@example.com",
			DisplayName:  "Alice",
			PasswordHash: hash,
			Role:         accountdomain.RoleCustomer,
		},
	}}
	svc, _, _ := setupAuthService(t, accounts)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    " Alice@Example.com ",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, accountdomain.RoleCustomer, result.Role)
	assert.Equal(t, "Alice", result.DisplayName)
	assert.NotEmpty(t, result.RawToken)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_OwnerLegacyPlaintextPassword(t *testing.T) {
	svc, db, node := setupAuthService(t, &accountStub{})
	seedOwner(t, db, node, "owner@bar.com", "plaintext-pw")

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "owner@bar.com",
		Password: "plaintext-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, accountdomain.RoleOwner, result.Role)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "owner@bar.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_OwnerHashedPassword(t *testing.T) {
	hash, err := password.Hash("hunter2")
	require.NoError(t, err)

	svc, db, node := setupAuthService(t, &accountStub{})
	seedOwner(t, db, node, "owner@bar.com", hash)

	result, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "owner@bar.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, accountdomain.RoleOwner, result.Role)

	// The stored hash is never accepted as the password itself.
	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "owner@bar.com",
		Password: hash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownPrincipal(t *testing.T) {
	svc, _, _ := setupAuthService(t, &accountStub{})

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_SessionLifecycle(t *testing.T) {
	hash, err := password.Hash("s3cret")
	require.NoError(t, err)
	accounts := &accountStub{byEmail: map[string]accountdomain.User{
		"alice@example.com": {
			ID:           snowflake.ID(42),
			Email:        "alice@example.com",
			PasswordHash: hash,
			Role:         accountdomain.RoleCustomer,
		},
	}}
	svc, _, _ := setupAuthService(t, accounts)
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), session.PrincipalID)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	_, err = svc.Authenticate(ctx, "no-such-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestRegister_MapsAccountErrors(t *testing.T) {
	svc, _, _ := setupAuthService(t, &accountStub{err: accountdomain.ErrEmailTaken})
	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "pw123456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	svc, _, _ = setupAuthService(t, &accountStub{err: accountdomain.ErrInvalidEmail})
	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Bob", Email: "bad", Password: "pw123456",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

package seed

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/auth/password"
	"github.com/pourhouse/pourhouse/internal/config"
	ownerdomain "github.com/pourhouse/pourhouse/internal/owner/domain"
)

const guestDisplayName = "Guest"

// EnsureGuestAccount seeds the shared guest account that anonymous sales
// book against. The password hash is a throwaway; the guest can never
// log in.
func EnsureGuestAccount(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing accountdomain.User
		err := tx.First(&existing, "email = ?", cfg.GuestEmail).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := password.Hash("guest-no-login")
		if err != nil {
			return err
		}
		return tx.Create(&accountdomain.User{
			ID:           node.Generate(),
			DisplayName:  guestDisplayName,
			Email:        cfg.GuestEmail,
			PasswordHash: hash,
			Role:         accountdomain.RoleCustomer,
		}).Error
	})
}

// EnsureBootstrapOwner creates an initial owner from the environment so
// a fresh install has someone who can log in. No-op when the variables
// are unset or the owner already exists.
func EnsureBootstrapOwner(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	email := strings.TrimSpace(os.Getenv("BOOTSTRAP_OWNER_EMAIL"))
	pass := os.Getenv("BOOTSTRAP_OWNER_PASSWORD")
	if email == "" || pass == "" {
		return nil
	}
	name := strings.TrimSpace(os.Getenv("BOOTSTRAP_OWNER_NAME"))
	if name == "" {
		name = "Owner"
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ownerdomain.Owner
		err := tx.First(&existing, "email = ?", strings.ToLower(email)).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := password.Hash(pass)
		if err != nil {
			return err
		}
		return tx.Create(&ownerdomain.Owner{
			ID:           node.Generate(),
			Name:         name,
			Email:        strings.ToLower(email),
			PasswordHash: hash,
		}).Error
	})
}

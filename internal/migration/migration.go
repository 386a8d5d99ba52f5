package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	authdomain "github.com/pourhouse/pourhouse/internal/auth/domain"
	bottledomain "github.com/pourhouse/pourhouse/internal/bottle/domain"
	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	ownerdomain "github.com/pourhouse/pourhouse/internal/owner/domain"
	purchasedomain "github.com/pourhouse/pourhouse/internal/purchase/domain"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	saledomain "github.com/pourhouse/pourhouse/internal/sale/domain"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
	telemetrydomain "github.com/pourhouse/pourhouse/internal/telemetry/domain"
	walletdomain "github.com/pourhouse/pourhouse/internal/wallet/domain"
)

//go:embed sql/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "sql"

// RunMigrations applies the embedded SQL migrations against postgres so
// the service is usable out of the box for local and self-hosted setups.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema through gorm for the non-postgres
// dialects (sqlite in tests, mysql for small installs).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ownerdomain.Owner{},
		&accountdomain.User{},
		&authdomain.Session{},
		&machinedomain.Machine{},
		&slotdomain.BottleSlot{},
		&ingredientdomain.Ingredient{},
		&recipedomain.Recipe{},
		&recipedomain.RecipeIngredient{},
		&bottledomain.Bottle{},
		&saledomain.SaleEvent{},
		&purchasedomain.Purchase{},
		&purchasedomain.PurchaseItem{},
		&walletdomain.LedgerEntry{},
		&telemetrydomain.TelemetryEvent{},
	)
}

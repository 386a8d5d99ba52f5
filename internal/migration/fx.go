package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/config"
	"github.com/pourhouse/pourhouse/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if err := seed.EnsureGuestAccount(conn, cfg); err != nil {
			return err
		}
		return seed.EnsureBootstrapOwner(conn)
	}),
)

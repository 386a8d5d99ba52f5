package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, owner *Owner) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Owner, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Owner, error)
	List(ctx context.Context, db *gorm.DB) ([]*Owner, error)
	Update(ctx context.Context, db *gorm.DB, owner *Owner) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

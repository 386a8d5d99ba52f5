package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/bottle/domain"
)

type repo struct{}

// Provide returns the gorm-backed bottle repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bottle *domain.Bottle) error {
	return db.WithContext(ctx).Create(bottle).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Bottle, error) {
	var bottle domain.Bottle
	err := db.WithContext(ctx).First(&bottle, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bottle, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Bottle, error) {
	var bottles []domain.Bottle
	if err := db.WithContext(ctx).Order("id ASC").Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

func (r *repo) ListIDs(ctx context.Context, db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Bottle{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, bottle *domain.Bottle) error {
	return db.WithContext(ctx).Save(bottle).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Bottle{}, "id = ?", id).Error
}

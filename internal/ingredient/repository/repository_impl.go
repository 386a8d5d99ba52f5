package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/ingredient/domain"
)

type repo struct{}

// Provide returns the gorm-backed ingredient repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ingredient *domain.Ingredient) error {
	return db.WithContext(ctx).Create(ingredient).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := db.WithContext(ctx).First(&ingredient, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if err := db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, ingredient *domain.Ingredient) error {
	return db.WithContext(ctx).Save(ingredient).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Ingredient{}, "id = ?", id).Error
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/recipe/domain"
)

type repo struct{}

// Provide returns the gorm-backed recipe repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, recipe *domain.Recipe) error {
	return db.WithContext(ctx).Create(recipe).Error
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := db.WithContext(ctx).First(&recipe, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := db.WithContext(ctx).Order("name ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, recipe *domain.Recipe) error {
	return db.WithContext(ctx).Save(recipe).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, name string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.RecipeIngredient{}, "recipe_name = ?", name).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Recipe{}, "name = ?", name).Error
	})
}

func (r *repo) ReplaceIngredients(ctx context.Context, db *gorm.DB, recipeName string, rows []domain.RecipeIngredient) error {
	if err := db.WithContext(ctx).Delete(&domain.RecipeIngredient{}, "recipe_name = ?", recipeName).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) ListIngredients(ctx context.Context, db *gorm.DB, recipeName string) ([]domain.RecipeIngredient, error) {
	var rows []domain.RecipeIngredient
	err := db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_name = ?", recipeName).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListAllIngredients(ctx context.Context, db *gorm.DB) ([]domain.RecipeIngredient, error) {
	var rows []domain.RecipeIngredient
	err := db.WithContext(ctx).
		Preload("Ingredient").
		Order("recipe_name ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

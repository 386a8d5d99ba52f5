package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/slot/domain"
)

type repo struct{}

// Provide returns the gorm-backed slot repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, slot *domain.BottleSlot) error {
	return db.WithContext(ctx).Create(slot).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BottleSlot, error) {
	var slot domain.BottleSlot
	err := db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repo) FindBySlotNumber(ctx context.Context, db *gorm.DB, slotNumber int) (*domain.BottleSlot, error) {
	var slot domain.BottleSlot
	err := db.WithContext(ctx).
		Where("slot_number = ?", slotNumber).
		Order("id ASC").
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repo) FindEnabledByLiquidName(ctx context.Context, db *gorm.DB, liquidName string) (*domain.BottleSlot, error) {
	var slot domain.BottleSlot
	err := db.WithContext(ctx).
		Where("liquid_name = ? AND is_enabled = ?", liquidName, true).
		Order("current_volume_ml DESC, id ASC").
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, machineID *snowflake.ID) ([]domain.BottleSlot, error) {
	stmt := db.WithContext(ctx).Model(&domain.BottleSlot{})
	if machineID != nil {
		stmt = stmt.Where("machine_id = ?", *machineID)
	}
	var slots []domain.BottleSlot
	if err := stmt.Order("slot_number ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, slot *domain.BottleSlot) error {
	return db.WithContext(ctx).Save(slot).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.BottleSlot{}, "id = ?", id).Error
}

func (r *repo) DecrementVolume(ctx context.Context, db *gorm.DB, id snowflake.ID, volumeML float64) error {
	return db.WithContext(ctx).
		Model(&domain.BottleSlot{}).
		Where("id = ?", id).
		Update("current_volume_ml", gorm.Expr(
			"CASE WHEN current_volume_ml > ? THEN current_volume_ml - ? ELSE 0 END",
			volumeML, volumeML,
		)).Error
}

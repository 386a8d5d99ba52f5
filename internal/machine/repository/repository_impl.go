package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/pourhouse/pourhouse/internal/machine/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, machine *domain.Machine) error {
	return db.WithContext(ctx).Create(machine).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Machine, error) {
	var machine domain.Machine
	err := db.WithContext(ctx).First(&machine, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *repo) FindByMachineID(ctx context.Context, db *gorm.DB, machineID string) (*domain.Machine, error) {
	var machine domain.Machine
	err := db.WithContext(ctx).First(&machine, "machine_id = ?", machineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Machine, error) {
	var machines []*domain.Machine
	err := db.WithContext(ctx).
		Model(&domain.Machine{}).
		Order("machine_id asc").
		Find(&machines).Error
	if err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, machine *domain.Machine) error {
	return db.WithContext(ctx).Save(machine).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Machine{}, "id = ?", id).Error
}

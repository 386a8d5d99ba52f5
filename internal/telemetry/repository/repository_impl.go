package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/telemetry/domain"
)

type repo struct{}

// Provide returns the gorm-backed telemetry repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, event *domain.TelemetryEvent) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) ListByMachine(ctx context.Context, db *gorm.DB, machineID snowflake.ID, limit int) ([]domain.TelemetryEvent, error) {
	stmt := db.WithContext(ctx).
		Where("machine_id = ?", machineID).
		Order("recorded_at DESC, id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	var events []domain.TelemetryEvent
	if err := stmt.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) DeleteRecordedBefore(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("recorded_at < ?", before).
		Delete(&domain.TelemetryEvent{})
	return res.RowsAffected, res.Error
}

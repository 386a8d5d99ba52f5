package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/sale/domain"
)

type repo struct{}

// Provide returns the gorm-backed sale repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, event *domain.SaleEvent) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, limit int) ([]domain.SaleEvent, error) {
	stmt := db.WithContext(ctx).Order("occurred_at DESC, id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	var events []domain.SaleEvent
	if err := stmt.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) DailyCounts(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.DailyCount, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.SaleEvent{}).
		Select("DATE(occurred_at) AS day, COUNT(*) AS count, SUM(amount_cents) AS total_cents").
		Group("DATE(occurred_at)").
		Order("day DESC")
	if !from.IsZero() {
		stmt = stmt.Where("occurred_at >= ?", from)
	}
	if !to.IsZero() {
		stmt = stmt.Where("occurred_at < ?", to)
	}
	var counts []domain.DailyCount
	if err := stmt.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

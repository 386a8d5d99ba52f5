package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository defines persistence operations for sale events and their
// daily aggregates.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, event *SaleEvent) error
	List(ctx context.Context, db *gorm.DB, limit int) ([]SaleEvent, error)

	// DailyCounts aggregates events per calendar day within [from, to).
	// Zero times leave the corresponding bound open.
	DailyCounts(ctx context.Context, db *gorm.DB, from, to time.Time) ([]DailyCount, error)
}

package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository defines persistence operations for telemetry events.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, event *TelemetryEvent) error
	ListByMachine(ctx context.Context, db *gorm.DB, machineID snowflake.ID, limit int) ([]TelemetryEvent, error)
	DeleteRecordedBefore(ctx context.Context, db *gorm.DB, before time.Time) (int64, error)
}

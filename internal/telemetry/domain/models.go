package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// TelemetryEvent is an append-only status report from a machine. Payload
// stays schemaless; firmware revisions disagree about what they send.
type TelemetryEvent struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	MachineID  snowflake.ID      `gorm:"column:machine_id;not null;index" json:"machine_id"`
	EventType  string            `gorm:"column:event_type;not null" json:"event_type"`
	Payload    datatypes.JSONMap `gorm:"type:jsonb" json:"payload,omitempty"`
	RecordedAt time.Time         `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TelemetryEvent) TableName() string { return "telemetry_events" }

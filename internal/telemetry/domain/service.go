package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

var ErrInvalidTelemetry = errors.New("invalid_telemetry")

type IngestRequest struct {
	Machine   string            `json:"machine" binding:"required"`
	EventType string            `json:"event_type" binding:"required"`
	Payload   datatypes.JSONMap `json:"payload"`
}

type ListRequest struct {
	Machine string `form:"machine" binding:"required"`
}

// Service ingests and reads machine telemetry. Ingest registers unknown
// machines on the fly, same as the other dispenser-facing endpoints.
type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*TelemetryEvent, error)
	List(ctx context.Context, req ListRequest) ([]TelemetryEvent, error)
}

package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/clock"
	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	"github.com/pourhouse/pourhouse/internal/telemetry/domain"
)

const listLimit = 200

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Machines machinedomain.Service
	Clock    clock.Clock
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	machines machinedomain.Service
	clock    clock.Clock
}

// New constructs the telemetry service.
func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("telemetry.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		machines: p.Machines,
		clock:    p.Clock,
	}
}

func (s *service) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.TelemetryEvent, error) {
	if strings.TrimSpace(req.Machine) == "" || strings.TrimSpace(req.EventType) == "" {
		return nil, domain.ErrInvalidTelemetry
	}

	machine, err := s.machines.ResolveOrCreate(ctx, req.Machine)
	if err != nil {
		return nil, err
	}

	event := &domain.TelemetryEvent{
		ID:         s.genID.Generate(),
		MachineID:  machine.ID,
		EventType:  strings.TrimSpace(req.EventType),
		Payload:    req.Payload,
		RecordedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, event); err != nil {
		s.log.Error("failed to ingest telemetry", zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.TelemetryEvent, error) {
	machine, err := s.machines.GetByMachineID(ctx, req.Machine)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByMachine(ctx, s.db, machine.ID, listLimit)
}

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	"github.com/pourhouse/pourhouse/internal/slot/domain"
	"github.com/pourhouse/pourhouse/pkg/db"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Machines machinedomain.Service
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	machines machinedomain.Service
}

// New constructs the slot service.
func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("slot.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		machines: p.Machines,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateSlotRequest) (*domain.BottleSlot, error) {
	if req.SlotNumber <= 0 {
		return nil, domain.ErrInvalidSlot
	}

	slot := &domain.BottleSlot{
		ID:              s.genID.Generate(),
		SlotNumber:      req.SlotNumber,
		LiquidName:      req.LiquidName,
		CurrentVolumeML: req.CurrentVolumeML,
		CapacityML:      req.CapacityML,
		IsEnabled:       true,
		Calibration:     req.Calibration,
	}
	if slot.CapacityML <= 0 {
		slot.CapacityML = 1000
	}
	if req.IsEnabled != nil {
		slot.IsEnabled = *req.IsEnabled
	}
	if req.MachineRef != "" {
		machine, err := s.machines.ResolveOrCreate(ctx, req.MachineRef)
		if err != nil {
			return nil, err
		}
		slot.MachineID = &machine.ID
	}

	if err := s.repo.Insert(ctx, s.db, slot); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlotTaken
		}
		s.log.Error("failed to create slot", zap.Error(err))
		return nil, err
	}
	return slot, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.BottleSlot, error) {
	slotID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidSlotID
	}
	return s.GetByID(ctx, slotID)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.BottleSlot, error) {
	slot, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, domain.ErrSlotNotFound
	}
	return slot, nil
}

func (s *service) GetBySlotNumber(ctx context.Context, slotNumber int) (*domain.BottleSlot, error) {
	slot, err := s.repo.FindBySlotNumber(ctx, s.db, slotNumber)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, domain.ErrSlotNotFound
	}
	return slot, nil
}

func (s *service) List(ctx context.Context, req domain.ListSlotsRequest) ([]domain.BottleSlot, error) {
	var machineID *snowflake.ID
	if req.MachineRef != "" {
		machine, err := s.machines.GetByMachineID(ctx, req.MachineRef)
		if err != nil {
			return nil, err
		}
		machineID = &machine.ID
	}
	return s.repo.List(ctx, s.db, machineID)
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateSlotRequest) (*domain.BottleSlot, error) {
	slot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MachineRef != nil {
		if *req.MachineRef == "" {
			slot.MachineID = nil
		} else {
			machine, err := s.machines.ResolveOrCreate(ctx, *req.MachineRef)
			if err != nil {
				return nil, err
			}
			slot.MachineID = &machine.ID
		}
	}
	if req.SlotNumber != nil {
		if *req.SlotNumber <= 0 {
			return nil, domain.ErrInvalidSlot
		}
		slot.SlotNumber = *req.SlotNumber
	}
	if req.LiquidName != nil {
		slot.LiquidName = *req.LiquidName
	}
	if req.CurrentVolumeML != nil {
		slot.CurrentVolumeML = *req.CurrentVolumeML
	}
	if req.CapacityML != nil {
		slot.CapacityML = *req.CapacityML
	}
	if req.IsEnabled != nil {
		slot.IsEnabled = *req.IsEnabled
	}
	if req.Calibration != nil {
		slot.Calibration = *req.Calibration
	}

	if err := s.repo.Update(ctx, s.db, slot); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}
	return slot, nil
}

func (s *service) Refill(ctx context.Context, id string) (*domain.BottleSlot, error) {
	slot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	slot.CurrentVolumeML = slot.CapacityML
	slot.LastRefillAt = &now
	if err := s.repo.Update(ctx, s.db, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	slot, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, slot.ID); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrSlotInUse
		}
		return err
	}
	return nil
}

func parseID(raw string) (snowflake.ID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ID(n), nil
}

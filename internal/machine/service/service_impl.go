package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pourhouse/pourhouse/internal/machine/domain"
	"github.com/pourhouse/pourhouse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("machine.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMachineRequest) (domain.Machine, error) {
	machineID := strings.TrimSpace(req.MachineID)
	if machineID == "" {
		return domain.Machine{}, domain.ErrInvalidMachineID
	}

	var ownerID *snowflake.ID
	if raw := strings.TrimSpace(req.OwnerID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			return domain.Machine{}, domain.ErrInvalidOwner
		}
		ownerID = &parsed
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = machineID
	}

	now := time.Now().UTC()
	machine := domain.Machine{
		ID:        s.genID.Generate(),
		MachineID: machineID,
		OwnerID:   ownerID,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &machine); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Machine{}, domain.ErrMachineIDTaken
		}
		return domain.Machine{}, err
	}
	return machine, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Machine, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	machines := make([]domain.Machine, 0, len(items))
	for _, item := range items {
		machines = append(machines, *item)
	}
	return machines, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Machine, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Machine{}, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Machine{}, err
	}
	if item == nil {
		return domain.Machine{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMachineRequest) (domain.Machine, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || parsed == 0 {
		return domain.Machine{}, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Machine{}, err
	}
	if item == nil {
		return domain.Machine{}, domain.ErrNotFound
	}

	if machineID := strings.TrimSpace(req.MachineID); machineID != "" {
		item.MachineID = machineID
	}
	if label := strings.TrimSpace(req.Label); label != "" {
		item.Label = label
	}
	if raw := strings.TrimSpace(req.OwnerID); raw != "" {
		ownerID, err := snowflake.ParseString(raw)
		if err != nil || ownerID == 0 {
			return domain.Machine{}, domain.ErrInvalidOwner
		}
		item.OwnerID = &ownerID
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Machine{}, domain.ErrMachineIDTaken
		}
		return domain.Machine{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func (s *Service) ResolveOrCreate(ctx context.Context, ref string) (domain.Machine, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Machine{}, domain.ErrInvalidMachineID
	}

	if id, err := snowflake.ParseString(ref); err == nil && id != 0 {
		item, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.Machine{}, err
		}
		if item != nil {
			return *item, nil
		}
	}

	item, err := s.repo.FindByMachineID(ctx, s.db, ref)
	if err != nil {
		return domain.Machine{}, err
	}
	if item != nil {
		return *item, nil
	}

	now := time.Now().UTC()
	machine := domain.Machine{
		ID:        s.genID.Generate(),
		MachineID: ref,
		Label:     ref,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &machine); err != nil {
		if db.IsDuplicateKeyErr(err) {
			if existing, ferr := s.repo.FindByMachineID(ctx, s.db, ref); ferr == nil && existing != nil {
				return *existing, nil
			}
		}
		return domain.Machine{}, err
	}
	s.log.Info("implicitly created machine", zap.String("machine_id", ref))
	return machine, nil
}

func (s *Service) GetByMachineID(ctx context.Context, machineID string) (domain.Machine, error) {
	item, err := s.repo.FindByMachineID(ctx, s.db, strings.TrimSpace(machineID))
	if err != nil {
		return domain.Machine{}, err
	}
	if item == nil {
		return domain.Machine{}, domain.ErrNotFound
	}
	return *item, nil
}

package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/clock"
	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
	"github.com/pourhouse/pourhouse/internal/observability/metrics"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	"github.com/pourhouse/pourhouse/internal/sale/domain"
)

const listLimit = 100

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Recipes  recipedomain.Service
	Accounts accountdomain.Service
	Machines machinedomain.Service
	Clock    clock.Clock
	Metrics  *metrics.Metrics `optional:"true"`
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	recipes  recipedomain.Service
	accounts accountdomain.Service
	machines machinedomain.Service
	clock    clock.Clock
	metrics  *metrics.Metrics
}

// New constructs the sale service.
func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("sale.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		recipes:  p.Recipes,
		accounts: p.Accounts,
		machines: p.Machines,
		clock:    p.Clock,
		metrics:  p.Metrics,
	}
}

func (s *service) Record(ctx context.Context, req domain.RecordSaleRequest) (*domain.SaleEvent, error) {
	recipeName := strings.TrimSpace(req.RecipeName)

	// Dispensers may sell a recipe that was never synced; those book at
	// zero under the posted name unless an explicit amount came along.
	var amount int64
	if recipeName != "" {
		recipe, err := s.recipes.GetByName(ctx, recipeName)
		switch {
		case err == nil:
			recipeName = recipe.Name
			amount = recipe.PriceCents
		case errors.Is(err, recipedomain.ErrRecipeNotFound):
		default:
			return nil, err
		}
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return nil, domain.ErrInvalidSale
		}
		amount = *req.AmountCents
	}

	user, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}

	var machineID *snowflake.ID
	if ref := strings.TrimSpace(req.Machine); ref != "" {
		machine, err := s.machines.GetByMachineID(ctx, ref)
		switch {
		case err == nil:
			machineID = &machine.ID
		case errors.Is(err, machinedomain.ErrNotFound):
			// Unknown machine never blocks the sale.
			s.log.Warn("sale from unknown machine", zap.String("machine", ref))
		default:
			return nil, err
		}
	}

	event := &domain.SaleEvent{
		ID:          s.genID.Generate(),
		RecipeName:  recipeName,
		UserID:      user.ID,
		MachineID:   machineID,
		AmountCents: amount,
		OccurredAt:  s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, event); err != nil {
		s.log.Error("failed to record sale", zap.Error(err))
		return nil, err
	}

	s.metrics.RecordSale(ctx, recipeName)
	s.log.Info("sale recorded",
		zap.String("recipe", recipeName),
		zap.Int64("amount_cents", amount),
		zap.Int64("user_id", int64(user.ID)),
	)
	return event, nil
}

// resolveCustomer maps the posted customer reference to an account. An
// empty reference books to the guest account; a reference that names no
// existing account is a caller error.
func (s *service) resolveCustomer(ctx context.Context, ref string) (accountdomain.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return s.accounts.GetOrCreateGuest(ctx)
	}

	var (
		user accountdomain.User
		err  error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		user, err = s.accounts.GetByID(ctx, snowflake.ID(id))
	} else {
		user, err = s.accounts.GetByEmail(ctx, ref)
	}
	if errors.Is(err, accountdomain.ErrNotFound) {
		return accountdomain.User{}, domain.ErrCustomerNotFound
	}
	return user, err
}

func (s *service) List(ctx context.Context) ([]domain.SaleEvent, error) {
	return s.repo.List(ctx, s.db, listLimit)
}

func (s *service) DailySummary(ctx context.Context, req domain.DailySummaryRequest) ([]domain.DailyCount, error) {
	var from, to time.Time
	if strings.EqualFold(strings.TrimSpace(req.Range), "today") {
		now := s.clock.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 0, 1)
	}
	return s.repo.DailyCounts(ctx, s.db, from, to)
}

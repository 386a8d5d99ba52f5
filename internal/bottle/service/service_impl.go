package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/bottle/domain"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository

	// Serializes id assignment within this process; the insert still runs
	// in a transaction so a duplicate from another process fails cleanly.
	assignMu sync.Mutex
}

// New constructs the bottle service.
func New(p Params) domain.Service {
	return &service{
		db:   p.DB,
		log:  p.Log.Named("bottle.service"),
		repo: p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateBottleRequest) (*domain.Bottle, error) {
	ingredient := strings.TrimSpace(req.Ingredient)
	if ingredient == "" {
		return nil, domain.ErrInvalidBottle
	}

	s.assignMu.Lock()
	defer s.assignMu.Unlock()

	var bottle *domain.Bottle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids, err := s.repo.ListIDs(ctx, tx)
		if err != nil {
			return err
		}
		bottle = &domain.Bottle{
			ID:             nextID(ids),
			BottleType:     strings.TrimSpace(req.BottleType),
			IngredientName: ingredient,
		}
		return s.repo.Insert(ctx, tx, bottle)
	})
	if err != nil {
		return nil, err
	}
	return bottle, nil
}

// nextID scans the existing ids for the highest b<N> and returns b<N+1>.
// Gaps left by deletions stay unused so a dispenser holding a stale id
// can never be handed someone else's bottle.
func nextID(ids []string) string {
	max := 0
	for _, id := range ids {
		rest, ok := strings.CutPrefix(id, "b")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return "b" + strconv.Itoa(max+1)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Bottle, error) {
	bottle, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if bottle == nil {
		return nil, domain.ErrBottleNotFound
	}
	return bottle, nil
}

func (s *service) List(ctx context.Context) ([]domain.Bottle, error) {
	return s.repo.List(ctx, s.db)
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateBottleRequest) (*domain.Bottle, error) {
	bottle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Ingredient != nil {
		ingredient := strings.TrimSpace(*req.Ingredient)
		if ingredient == "" {
			return nil, domain.ErrInvalidBottle
		}
		bottle.IngredientName = ingredient
	}
	if req.BottleType != nil {
		bottle.BottleType = strings.TrimSpace(*req.BottleType)
	}

	if err := s.repo.Update(ctx, s.db, bottle); err != nil {
		return nil, err
	}
	return bottle, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	bottle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, bottle.ID)
}

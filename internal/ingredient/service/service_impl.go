package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pourhouse/pourhouse/internal/ingredient/domain"
	"github.com/pourhouse/pourhouse/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

// New constructs the ingredient service.
func New(p Params) domain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("ingredient.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateIngredientRequest) (*domain.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidIngredient
	}

	ingredient := &domain.Ingredient{
		ID:   s.genID.Generate(),
		Name: name,
		ABV:  req.ABV,
	}
	if err := s.repo.Insert(ctx, s.db, ingredient); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		s.log.Error("failed to create ingredient", zap.Error(err))
		return nil, err
	}
	return ingredient, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	ingredientID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidIngredientID
	}
	return s.GetByID(ctx, ingredientID)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, domain.ErrIngredientNotFound
	}
	return ingredient, nil
}

func (s *service) List(ctx context.Context) ([]domain.Ingredient, error) {
	return s.repo.List(ctx, s.db)
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateIngredientRequest) (*domain.Ingredient, error) {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidIngredient
		}
		ingredient.Name = name
	}
	if req.ABV != nil {
		ingredient.ABV = *req.ABV
	}

	if err := s.repo.Update(ctx, s.db, ingredient); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, ingredient.ID); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrIngredientInUse
		}
		return err
	}
	return nil
}

func (s *service) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidIngredient
	}

	ingredient, err := s.repo.FindByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if ingredient != nil {
		return ingredient, nil
	}

	ingredient = &domain.Ingredient{
		ID:   s.genID.Generate(),
		Name: name,
	}
	if err := s.repo.Insert(ctx, tx, ingredient); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost a create race; the row exists now.
			return s.repo.FindByName(ctx, tx, name)
		}
		return nil, err
	}
	return ingredient, nil
}

func parseID(raw string) (snowflake.ID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return snowflake.ID(n), nil
}

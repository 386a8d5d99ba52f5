package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pourhouse/pourhouse/internal/auth/password"
	"github.com/pourhouse/pourhouse/internal/owner/domain"
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
		log:   p.Log.Named("owner.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOwnerRequest) (domain.Owner, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Owner{}, domain.ErrInvalidName
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return domain.Owner{}, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Password) == "" {
		return domain.Owner{}, domain.ErrInvalidPassword
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.Owner{}, err
	}

	now := time.Now().UTC()
	owner := domain.Owner{
		ID:           s.genID.Generate(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &owner); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Owner{}, domain.ErrEmailTaken
		}
		return domain.Owner{}, err
	}

	return owner, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Owner, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	owners := make([]domain.Owner, 0, len(items))
	for _, item := range items {
		owners = append(owners, *item)
	}
	return owners, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Owner, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Owner{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Owner{}, err
	}
	if item == nil {
		return domain.Owner{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateOwnerRequest) (domain.Owner, error) {
	parsed, err := parseID(req.ID)
	if err != nil {
		return domain.Owner{}, err
	}
	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Owner{}, err
	}
	if item == nil {
		return domain.Owner{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		item.Email = email
	}
	if pw := strings.TrimSpace(req.Password); pw != "" {
		hash, err := password.Hash(pw)
		if err != nil {
			return domain.Owner{}, err
		}
		item.PasswordHash = hash
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Owner{}, domain.ErrEmailTaken
		}
		return domain.Owner{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return email
}

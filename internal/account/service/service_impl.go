package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/auth/password"
	"github.com/pourhouse/pourhouse/internal/config"
	"github.com/pourhouse/pourhouse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Placeholder credential for the guest account. Guests never log in.
const guestPassword = "guest-no-login"

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	cfg   config.Config
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Password) == "" {
		return domain.User{}, domain.ErrInvalidPassword
	}

	role := strings.TrimSpace(req.Role)
	switch role {
	case domain.RoleCustomer, domain.RoleOwner, domain.RoleAdmin:
	default:
		role = domain.RoleCustomer
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		DisplayName:  name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.User, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if item == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	item, err := s.repo.FindByEmail(ctx, s.db, normalizeEmail(email))
	if err != nil {
		return domain.User{}, err
	}
	if item == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.User{}, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if item == nil {
		return domain.User{}, domain.ErrNotFound
	}

	if name := strings.TrimSpace(req.DisplayName); name != "" {
		item.DisplayName = name
	}
	if email := normalizeEmail(req.Email); email != "" {
		item.Email = email
	}
	if pw := strings.TrimSpace(req.Password); pw != "" {
		hash, err := password.Hash(pw)
		if err != nil {
			return domain.User{}, err
		}
		item.PasswordHash = hash
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
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

func (s *Service) GetOrCreateGuest(ctx context.Context) (domain.User, error) {
	email := normalizeEmail(s.cfg.GuestEmail)

	var guest domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			guest = *existing
			return nil
		}

		hash, err := password.Hash(guestPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		guest = domain.User{
			ID:           s.genID.Generate(),
			DisplayName:  "Guest",
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleCustomer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Insert(ctx, tx, &guest); err != nil {
			// Lost a create race: another request inserted the guest first.
			if db.IsDuplicateKeyErr(err) {
				existing, ferr := s.repo.FindByEmail(ctx, tx, email)
				if ferr != nil {
					return ferr
				}
				if existing != nil {
					guest = *existing
					return nil
				}
			}
			return err
		}
		s.log.Info("created guest account", zap.String("email", email))
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return guest, nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return email
}

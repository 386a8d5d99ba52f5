package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/auth/domain"
	"github.com/pourhouse/pourhouse/internal/auth/password"
	"github.com/pourhouse/pourhouse/internal/config"
	ownerdomain "github.com/pourhouse/pourhouse/internal/owner/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Accounts accountdomain.Service
	Owners   ownerdomain.Repository
	Sessions domain.SessionRepository
}

type Service struct {
	cfg      config.Config
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	accounts accountdomain.Service
	owners   ownerdomain.Repository
	sessions domain.SessionRepository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:      p.Cfg,
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		accounts: p.Accounts,
		owners:   p.Owners,
		sessions: p.Sessions,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (accountdomain.User, error) {
	user, err := s.accounts.Create(ctx, accountdomain.CreateUserRequest{
		DisplayName: req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        accountdomain.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, accountdomain.ErrEmailTaken) {
			return accountdomain.User{}, domain.ErrEmailTaken
		}
		if errors.Is(err, accountdomain.ErrInvalidName) ||
			errors.Is(err, accountdomain.ErrInvalidEmail) ||
			errors.Is(err, accountdomain.ErrInvalidPassword) {
			return accountdomain.User{}, domain.ErrInvalidRequest
		}
		return accountdomain.User{}, err
	}
	return user, nil
}

// Login matches customers first, then owners. Owner rows predating password
// hashing may store the password in clear; for owners only, an exact match on
// the stored value is accepted.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if user, err := s.accounts.GetByEmail(ctx, email); err == nil {
		if password.Verify(req.Password, user.PasswordHash) {
			return s.createSession(ctx, user.ID, user.Role, user.DisplayName, req)
		}
		return nil, domain.ErrInvalidCredentials
	} else if !errors.Is(err, accountdomain.ErrNotFound) {
		return nil, err
	}

	owner, err := s.owners.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok := password.Verify(req.Password, owner.PasswordHash)
	if !ok && !password.IsHashed(owner.PasswordHash) {
		ok = owner.PasswordHash == req.Password
		if ok {
			s.log.Warn("owner logged in with legacy plaintext password",
				zap.String("owner_id", owner.ID.String()),
			)
		}
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.createSession(ctx, owner.ID, accountdomain.RoleOwner, owner.Name, req)
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return err
	}
	return s.sessions.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessions.UpdateLastSeen(ctx, s.db, session.ID, now); err != nil {
		s.log.Warn("failed to update session last seen", zap.Error(err))
	}
	return session, nil
}

func (s *Service) createSession(ctx context.Context, principalID snowflake.ID, role, displayName string, req domain.LoginRequest) (*domain.LoginResult, error) {
	rawToken := uuid.NewString()
	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour)

	session := domain.Session{
		ID:               s.genID.Generate(),
		PrincipalID:      principalID,
		Role:             role,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessions.CreateSession(ctx, s.db, &session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Role:        role,
		PrincipalID: principalID.String(),
		DisplayName: displayName,
		RawToken:    rawToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) lookupSession(ctx context.Context, rawToken string) (*domain.Session, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, domain.ErrInvalidSession
	}
	session, err := s.sessions.GetSessionByTokenHash(ctx, s.db, hashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

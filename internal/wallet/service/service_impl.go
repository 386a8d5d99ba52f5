package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/observability/metrics"
	"github.com/pourhouse/pourhouse/internal/wallet/domain"
)

const statementLimit = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Accounts accountdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	accounts accountdomain.Service
	metrics  *metrics.Metrics
}

// New constructs the wallet service.
func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("wallet.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		accounts: p.Accounts,
		metrics:  p.Metrics,
	}
}

func (s *service) Topup(ctx context.Context, userID snowflake.ID, req domain.TopupRequest) (*domain.LedgerEntry, error) {
	if req.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var entry *domain.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		balance, err := s.repo.Credit(ctx, tx, userID, req.AmountCents)
		if err != nil {
			return err
		}
		entry = &domain.LedgerEntry{
			ID:                s.genID.Generate(),
			UserID:            userID,
			Type:              domain.TypeTopup,
			AmountCents:       req.AmountCents,
			BalanceAfterCents: balance,
			Reference:         req.Reference,
		}
		return s.repo.InsertEntry(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLedgerEntry(ctx, domain.TypeTopup)
	s.log.Info("wallet topup",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("amount_cents", req.AmountCents),
	)
	return entry, nil
}

func (s *service) Charge(ctx context.Context, tx *gorm.DB, userID snowflake.ID, amountCents int64, reference string) (*domain.LedgerEntry, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	balance, ok, err := s.repo.Debit(ctx, tx, userID, amountCents)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInsufficientFunds
	}

	entry := &domain.LedgerEntry{
		ID:                s.genID.Generate(),
		UserID:            userID,
		Type:              domain.TypeCharge,
		AmountCents:       -amountCents,
		BalanceAfterCents: balance,
		Reference:         reference,
	}
	if err := s.repo.InsertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	s.metrics.RecordLedgerEntry(ctx, domain.TypeCharge)
	return entry, nil
}

func (s *service) Statement(ctx context.Context, userID snowflake.ID) (*domain.Statement, error) {
	user, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, s.db, user.ID, statementLimit)
	if err != nil {
		return nil, err
	}
	return &domain.Statement{
		UserID:       user.ID,
		BalanceCents: user.WalletBalanceCents,
		Entries:      entries,
	}, nil
}

package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/wallet/domain"
)

type repo struct{}

// Provide returns the gorm-backed wallet repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertEntry(ctx context.Context, db *gorm.DB, entry *domain.LedgerEntry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListEntries(ctx context.Context, db *gorm.DB, userID snowflake.ID, limit int) ([]domain.LedgerEntry, error) {
	stmt := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	var entries []domain.LedgerEntry
	if err := stmt.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Credit(ctx context.Context, db *gorm.DB, userID snowflake.ID, amountCents int64) (int64, error) {
	res := db.WithContext(ctx).
		Model(&accountdomain.User{}).
		Where("id = ?", userID).
		Update("wallet_balance_cents", gorm.Expr("wallet_balance_cents + ?", amountCents))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrAccountNotFound
	}
	return r.Balance(ctx, db, userID)
}

func (r *repo) Debit(ctx context.Context, db *gorm.DB, userID snowflake.ID, amountCents int64) (int64, bool, error) {
	res := db.WithContext(ctx).
		Model(&accountdomain.User{}).
		Where("id = ? AND wallet_balance_cents >= ?", userID, amountCents).
		Update("wallet_balance_cents", gorm.Expr("wallet_balance_cents - ?", amountCents))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	balance, err := r.Balance(ctx, db, userID)
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (r *repo) Balance(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var balance int64
	err := db.WithContext(ctx).
		Model(&accountdomain.User{}).
		Where("id = ?", userID).
		Pluck("wallet_balance_cents", &balance).Error
	return balance, err
}

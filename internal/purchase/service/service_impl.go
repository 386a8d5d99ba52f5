package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/pourhouse/pourhouse/internal/account/domain"
	"github.com/pourhouse/pourhouse/internal/purchase/domain"
	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
	walletdomain "github.com/pourhouse/pourhouse/internal/wallet/domain"
)

const historyLimit = 50

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Recipes  recipedomain.Service
	Accounts accountdomain.Service
	Slots    slotdomain.Repository
	Wallet   walletdomain.Service
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	recipes  recipedomain.Service
	accounts accountdomain.Service
	slots    slotdomain.Repository
	wallet   walletdomain.Service
}

// New constructs the purchase service.
func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("purchase.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		recipes:  p.Recipes,
		accounts: p.Accounts,
		slots:    p.Slots,
		wallet:   p.Wallet,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreatePurchaseRequest) (*domain.PurchaseResult, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidPurchase
	}

	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentCard
	}
	switch method {
	case domain.PaymentWallet, domain.PaymentCard, domain.PaymentCash, domain.PaymentMobile:
	default:
		return nil, domain.ErrInvalidPayment
	}

	status := req.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	switch status {
	case domain.StatusPending, domain.StatusCompleted, domain.StatusFailed, domain.StatusRefunded:
	default:
		return nil, domain.ErrInvalidPurchase
	}

	detail, err := s.recipes.Get(ctx, req.RecipeName)
	if err != nil {
		return nil, err
	}

	userID := s.resolveUser(ctx, req.UserID)

	priceAtPurchase := detail.PriceCents
	if req.PriceAtPurchaseCents != nil {
		priceAtPurchase = *req.PriceAtPurchaseCents
	}
	amountPaid := priceAtPurchase * int64(quantity)
	if req.AmountPaidCents != nil {
		amountPaid = *req.AmountPaidCents
	}
	if priceAtPurchase < 0 || amountPaid < 0 {
		return nil, domain.ErrInvalidPurchase
	}

	// Wallet payment needs an account to debit.
	if method == domain.PaymentWallet && userID == nil {
		return nil, domain.ErrInvalidPurchase
	}

	result := &domain.PurchaseResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		purchase := &domain.Purchase{
			ID:                   s.genID.Generate(),
			UserID:               userID,
			RecipeName:           detail.Name,
			Quantity:             quantity,
			AmountPaidCents:      amountPaid,
			PriceAtPurchaseCents: priceAtPurchase,
			PaymentMethod:        method,
			Status:               status,
			Metadata:             req.Metadata,
		}

		if method == domain.PaymentWallet {
			ref := fmt.Sprintf("purchase:%d", purchase.ID)
			if _, err := s.wallet.Charge(ctx, tx, *userID, amountPaid, ref); err != nil {
				return err
			}
		}

		if err := s.repo.Insert(ctx, tx, purchase); err != nil {
			return err
		}

		if len(req.Bottles) > 0 {
			if err := s.fulfillFromBottles(ctx, tx, purchase, req.Bottles, result); err != nil {
				return err
			}
		} else if err := s.fulfillFromRecipe(ctx, tx, purchase, detail, quantity, result); err != nil {
			return err
		}

		result.Purchase = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("purchase recorded",
		zap.Int64("purchase_id", int64(result.Purchase.ID)),
		zap.String("recipe", detail.Name),
		zap.Int64("amount_paid_cents", amountPaid),
		zap.Int("unfulfilled", len(result.Unfulfilled)),
	)
	return result, nil
}

// fulfillFromBottles applies a client-supplied pour list. A pair with no
// slot id, no volume, or an unknown slot is skipped, never failed; the
// slot never drains below zero.
func (s *service) fulfillFromBottles(ctx context.Context, tx *gorm.DB, purchase *domain.Purchase, bottles []domain.PurchaseBottleRequest, result *domain.PurchaseResult) error {
	for _, b := range bottles {
		if b.SlotID == 0 || b.VolumeML <= 0 {
			continue
		}
		slot, err := s.slots.FindByID(ctx, tx, b.SlotID)
		if err != nil {
			return err
		}
		if slot == nil {
			result.Unfulfilled = append(result.Unfulfilled, b.SlotID.String())
			continue
		}
		if err := s.pour(ctx, tx, purchase, slot, b.VolumeML); err != nil {
			return err
		}
	}
	return nil
}

// fulfillFromRecipe pours the recipe's own component list, resolving
// slots by liquid name. Components with no loaded slot are reported as
// unfulfilled.
func (s *service) fulfillFromRecipe(ctx context.Context, tx *gorm.DB, purchase *domain.Purchase, detail *recipedomain.RecipeDetail, quantity int, result *domain.PurchaseResult) error {
	for _, line := range detail.Ingredients {
		name := ""
		if line.Ingredient != nil {
			name = line.Ingredient.Name
		}
		if name == "" {
			continue
		}
		slot, err := s.slots.FindEnabledByLiquidName(ctx, tx, name)
		if err != nil {
			return err
		}
		if slot == nil {
			result.Unfulfilled = append(result.Unfulfilled, name)
			continue
		}
		if err := s.pour(ctx, tx, purchase, slot, line.AmountML*float64(quantity)); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) pour(ctx context.Context, tx *gorm.DB, purchase *domain.Purchase, slot *slotdomain.BottleSlot, volumeML float64) error {
	if err := s.slots.DecrementVolume(ctx, tx, slot.ID, volumeML); err != nil {
		return err
	}
	item := &domain.PurchaseItem{
		ID:             s.genID.Generate(),
		PurchaseID:     purchase.ID,
		SlotID:         slot.ID,
		IngredientName: slot.LiquidName,
		AmountML:       volumeML,
	}
	if err := s.repo.InsertItem(ctx, tx, item); err != nil {
		return err
	}
	purchase.Items = append(purchase.Items, *item)
	return nil
}

// resolveUser maps an optional account reference onto an account id. An
// unknown or malformed reference is tolerated as an anonymous purchase.
func (s *service) resolveUser(ctx context.Context, ref string) *snowflake.ID {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	raw, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil
	}
	user, err := s.accounts.GetByID(ctx, snowflake.ID(raw))
	if err != nil {
		if !errors.Is(err, accountdomain.ErrNotFound) {
			s.log.Warn("user lookup failed on purchase", zap.Error(err))
		}
		return nil
	}
	return &user.ID
}

func (s *service) Get(ctx context.Context, id string) (*domain.Purchase, error) {
	raw, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidPurchaseID
	}
	purchase, err := s.repo.FindByID(ctx, s.db, snowflake.ID(raw))
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Purchase, error) {
	return s.repo.ListByUser(ctx, s.db, userID, historyLimit)
}

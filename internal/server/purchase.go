package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	purchasedomain "github.com/pourhouse/pourhouse/internal/purchase/domain"
)

type purchaseBottleEntry struct {
	SlotID   int64   `json:"slot_id"`
	VolumeML float64 `json:"volume_ml"`
}

type createPurchaseRequest struct {
	Recipe               string                `json:"recipe"`
	Quantity             int                   `json:"quantity"`
	PaymentMethod        string                `json:"payment_method"`
	Status               string                `json:"status"`
	UserID               string                `json:"user_id"`
	AmountPaidCents      *int64                `json:"amount_paid_cents"`
	PriceAtPurchaseCents *int64                `json:"price_at_purchase_cents"`
	Metadata             datatypes.JSONMap     `json:"metadata"`
	Bottles              []purchaseBottleEntry `json:"bottles"`
}

// CreatePurchase is open to unauthenticated dispensers; a logged-in
// session is used as the purchaser when the payload names no user.
func (s *Server) CreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userRef := strings.TrimSpace(req.UserID)
	if userRef == "" {
		if id, ok := principalID(c); ok {
			userRef = id.String()
		}
	}

	bottles := make([]purchasedomain.PurchaseBottleRequest, 0, len(req.Bottles))
	for _, b := range req.Bottles {
		bottles = append(bottles, purchasedomain.PurchaseBottleRequest{
			SlotID:   snowflake.ID(b.SlotID),
			VolumeML: b.VolumeML,
		})
	}

	resp, err := s.purchaseSvc.Create(c.Request.Context(), purchasedomain.CreatePurchaseRequest{
		RecipeName:           strings.TrimSpace(req.Recipe),
		Quantity:             req.Quantity,
		PaymentMethod:        strings.TrimSpace(req.PaymentMethod),
		Status:               strings.TrimSpace(req.Status),
		UserID:               userRef,
		AmountPaidCents:      req.AmountPaidCents,
		PriceAtPurchaseCents: req.PriceAtPurchaseCents,
		Metadata:             req.Metadata,
		Bottles:              bottles,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListPurchases(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.purchaseSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPurchaseByID(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.purchaseSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.UserID == nil || *resp.UserID != userID {
		AbortWithError(c, purchasedomain.ErrPurchaseNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

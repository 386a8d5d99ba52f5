package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	walletdomain "github.com/pourhouse/pourhouse/internal/wallet/domain"
)

type topupRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference"`
}

func (s *Server) GetWallet(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.walletSvc.Statement(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TopupWallet(c *gin.Context) {
	userID, ok := principalID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req topupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.walletSvc.Topup(c.Request.Context(), userID, walletdomain.TopupRequest{
		AmountCents: req.AmountCents,
		Reference:   strings.TrimSpace(req.Reference),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

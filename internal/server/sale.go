package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	saledomain "github.com/pourhouse/pourhouse/internal/sale/domain"
)

type recordSaleRequest struct {
	Recipe      string `json:"recipe"`
	AmountCents *int64 `json:"amount_cents"`
	Customer    string `json:"customer"`
	Machine     string `json:"machine"`
}

func (s *Server) RecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Record(c.Request.Context(), saledomain.RecordSaleRequest{
		RecipeName:  strings.TrimSpace(req.Recipe),
		AmountCents: req.AmountCents,
		Customer:    strings.TrimSpace(req.Customer),
		Machine:     strings.TrimSpace(req.Machine),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
	resp, err := s.saleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDailySales(c *gin.Context) {
	var query saledomain.DailySummaryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.DailySummary(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	bottledomain "github.com/pourhouse/pourhouse/internal/bottle/domain"
)

func (s *Server) CreateBottle(c *gin.Context) {
	var req bottledomain.CreateBottleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bottleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListBottles(c *gin.Context) {
	resp, err := s.bottleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBottleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bottleSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBottle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req bottledomain.UpdateBottleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bottleSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBottle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.bottleSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

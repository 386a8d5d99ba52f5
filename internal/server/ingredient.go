package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ingredientdomain "github.com/pourhouse/pourhouse/internal/ingredient/domain"
)

type createIngredientRequest struct {
	Name string  `json:"name"`
	ABV  float64 `json:"abv"`
}

type updateIngredientRequest struct {
	Name *string  `json:"name"`
	ABV  *float64 `json:"abv"`
}

func (s *Server) CreateIngredient(c *gin.Context) {
	var req createIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.Create(c.Request.Context(), ingredientdomain.CreateIngredientRequest{
		Name: strings.TrimSpace(req.Name),
		ABV:  req.ABV,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListIngredients(c *gin.Context) {
	resp, err := s.ingredientSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetIngredientByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.ingredientSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateIngredient(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.Update(c.Request.Context(), id, ingredientdomain.UpdateIngredientRequest{
		Name: trimStringPtr(req.Name),
		ABV:  req.ABV,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteIngredient(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.ingredientSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

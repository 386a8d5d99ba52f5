package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
)

// SyncRecipe accepts both dispenser payload generations; the request type
// handles the legacy bottle_<n> keys itself.
func (s *Server) SyncRecipe(c *gin.Context) {
	var req recipedomain.SyncRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recipeSvc.Sync(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRecipes(c *gin.Context) {
	resp, err := s.recipeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ListRecipeIngredients exposes the component lines directly; the
// optional recipe query narrows to one recipe.
func (s *Server) ListRecipeIngredients(c *gin.Context) {
	resp, err := s.recipeSvc.ListIngredients(c.Request.Context(), strings.TrimSpace(c.Query("recipe")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRecipeByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	resp, err := s.recipeSvc.Get(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRecipe(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	var req recipedomain.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.recipeSvc.Update(c.Request.Context(), name, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRecipe(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := s.recipeSvc.Delete(c.Request.Context(), name); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

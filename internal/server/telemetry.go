package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	telemetrydomain "github.com/pourhouse/pourhouse/internal/telemetry/domain"
)

func (s *Server) IngestTelemetry(c *gin.Context) {
	var req telemetrydomain.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.telemetrySvc.Ingest(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListTelemetry(c *gin.Context) {
	var query telemetrydomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.telemetrySvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

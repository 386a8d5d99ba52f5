package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	obslogger "github.com/pourhouse/pourhouse/internal/observability/logger"
	"go.uber.org/zap"
)

type mixItem struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
}

// Mix acknowledges a dispense request: a JSON array of {id, quantity}
// pours. Hardware dispatch happens on the machine itself; the backend
// logs the plan and echoes it back so the firmware has a single
// endpoint to talk to.
func (s *Server) Mix(c *gin.Context) {
	var items []mixItem
	if err := c.ShouldBindJSON(&items); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_mix", "expected a list of pours"))
		return
	}

	s.obsMetrics.RecordMixRequest(c.Request.Context(), len(items))
	log := obslogger.FromContext(c.Request.Context())
	for _, item := range items {
		log.Info("pour requested",
			zap.String("bottle", item.ID),
			zap.Float64("quantity_ml", item.Quantity),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "mix request processed",
		"data":    items,
	})
}

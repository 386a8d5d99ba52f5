package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	slotdomain "github.com/pourhouse/pourhouse/internal/slot/domain"
)

type createSlotRequest struct {
	Machine         string            `json:"machine"`
	SlotNumber      int               `json:"slot_number"`
	LiquidName      string            `json:"liquid_name"`
	CurrentVolumeML float64           `json:"current_volume_ml"`
	CapacityML      float64           `json:"capacity_ml"`
	IsEnabled       *bool             `json:"is_enabled"`
	Calibration     datatypes.JSONMap `json:"calibration"`
}

type updateSlotRequest struct {
	Machine         *string            `json:"machine"`
	SlotNumber      *int               `json:"slot_number"`
	LiquidName      *string            `json:"liquid_name"`
	CurrentVolumeML *float64           `json:"current_volume_ml"`
	CapacityML      *float64           `json:"capacity_ml"`
	IsEnabled       *bool              `json:"is_enabled"`
	Calibration     *datatypes.JSONMap `json:"calibration"`
}

type slotResponse struct {
	slotdomain.BottleSlot
	PercentFull float64 `json:"percent_full"`
}

func newSlotResponse(slot slotdomain.BottleSlot) slotResponse {
	return slotResponse{BottleSlot: slot, PercentFull: slot.PercentFull()}
}

func (s *Server) CreateSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slot, err := s.slotSvc.Create(c.Request.Context(), slotdomain.CreateSlotRequest{
		MachineRef:      strings.TrimSpace(req.Machine),
		SlotNumber:      req.SlotNumber,
		LiquidName:      strings.TrimSpace(req.LiquidName),
		CurrentVolumeML: req.CurrentVolumeML,
		CapacityML:      req.CapacityML,
		IsEnabled:       req.IsEnabled,
		Calibration:     req.Calibration,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": newSlotResponse(*slot)})
}

func (s *Server) ListSlots(c *gin.Context) {
	var query slotdomain.ListSlotsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slots, err := s.slotSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, newSlotResponse(slot))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSlotByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	slot, err := s.slotSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newSlotResponse(*slot)})
}

func (s *Server) UpdateSlot(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slot, err := s.slotSvc.Update(c.Request.Context(), id, slotdomain.UpdateSlotRequest{
		MachineRef:      req.Machine,
		SlotNumber:      req.SlotNumber,
		LiquidName:      req.LiquidName,
		CurrentVolumeML: req.CurrentVolumeML,
		CapacityML:      req.CapacityML,
		IsEnabled:       req.IsEnabled,
		Calibration:     req.Calibration,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newSlotResponse(*slot)})
}

func (s *Server) RefillSlot(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	slot, err := s.slotSvc.Refill(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newSlotResponse(*slot)})
}

func (s *Server) DeleteSlot(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.slotSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	machinedomain "github.com/pourhouse/pourhouse/internal/machine/domain"
)

type createMachineRequest struct {
	MachineID string `json:"machine_id"`
	OwnerID   string `json:"owner_id"`
	Label     string `json:"label"`
}

type updateMachineRequest struct {
	MachineID string `json:"machine_id"`
	OwnerID   string `json:"owner_id"`
	Label     string `json:"label"`
}

func (s *Server) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.machineSvc.Create(c.Request.Context(), machinedomain.CreateMachineRequest{
		MachineID: strings.TrimSpace(req.MachineID),
		OwnerID:   strings.TrimSpace(req.OwnerID),
		Label:     strings.TrimSpace(req.Label),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListMachines(c *gin.Context) {
	resp, err := s.machineSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMachineByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.machineSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateMachine(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req updateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.machineSvc.Update(c.Request.Context(), machinedomain.UpdateMachineRequest{
		ID:        id,
		MachineID: strings.TrimSpace(req.MachineID),
		OwnerID:   strings.TrimSpace(req.OwnerID),
		Label:     strings.TrimSpace(req.Label),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMachine(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.machineSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}

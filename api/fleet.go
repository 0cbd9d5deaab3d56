package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

// FleetHandler covers plane and crew administration, both admin-only CRUD.
type FleetHandler struct {
	planes repository.PlaneRepository
	crews  repository.CrewRepository
}

func NewFleetHandler(planes repository.PlaneRepository, crews repository.CrewRepository) *FleetHandler {
	return &FleetHandler{planes: planes, crews: crews}
}

func (h *FleetHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/planes", h.listPlanes)
	router.POST("/planes", h.createPlane)
	router.PUT("/planes/:id", h.updatePlane)
	router.DELETE("/planes/:id", h.deletePlane)

	router.GET("/crews", h.listCrews)
	router.POST("/crews", h.createCrew)
	router.PUT("/crews/:id", h.updateCrew)
	router.DELETE("/crews/:id", h.deleteCrew)
}

func (h *FleetHandler) listPlanes(c *gin.Context) {
	planes, err := h.planes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"planes": planes})
}

func (h *FleetHandler) createPlane(c *gin.Context) {
	var req domain.Plane
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	if req.Model == "" || req.Registration == "" {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "model and registration are required"})
		return
	}

	if err := h.planes.Create(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plane": req})
}

func (h *FleetHandler) updatePlane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.Plane
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	req.ID = id

	if err := h.planes.Update(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plane": req})
}

func (h *FleetHandler) deletePlane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.planes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *FleetHandler) listCrews(c *gin.Context) {
	crews, err := h.crews.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"crews": crews})
}

func (h *FleetHandler) createCrew(c *gin.Context) {
	var req domain.Crew
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	if req.Name == "" || req.MainRole == "" {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "name and main role are required"})
		return
	}

	if err := h.crews.Create(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"crew": req})
}

func (h *FleetHandler) updateCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.Crew
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	req.ID = id

	if err := h.crews.Update(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"crew": req})
}

func (h *FleetHandler) deleteCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.crews.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

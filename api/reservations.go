package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/service/reservation"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/reservations", h.create)
	router.GET("/reservations", h.list)
	router.PUT("/reservations/:id", h.update)
	router.DELETE("/reservations/:id", h.cancel)
}

func (h *ReservationHandler) create(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": "missing identity"})
		return
	}

	var req reservation.CreateReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	req.UserID = identity.UserID

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

func (h *ReservationHandler) list(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": "missing identity"})
		return
	}

	reservations, err := h.service.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *ReservationHandler) update(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": "missing identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reservation.UpdateReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	req.UserID = identity.UserID

	res, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": "missing identity"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, identity.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

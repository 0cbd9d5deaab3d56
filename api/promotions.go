package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/domain"
	"github.com/skydesk/reservations/internal/repository"
)

// Promotions are plain storage with no invariant, so the handler talks to
// the repository directly.
type PromotionHandler struct {
	repo repository.PromotionRepository
}

func NewPromotionHandler(repo repository.PromotionRepository) *PromotionHandler {
	return &PromotionHandler{repo: repo}
}

func (h *PromotionHandler) Register(router *gin.RouterGroup) {
	router.GET("/promotions", h.list)
}

func (h *PromotionHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("/promotions", h.create)
	router.PUT("/promotions/:id", h.update)
	router.DELETE("/promotions/:id", h.delete)
}

func (h *PromotionHandler) list(c *gin.Context) {
	promotions, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": promotions})
}

func (h *PromotionHandler) create(c *gin.Context) {
	var req domain.Promotion
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	if req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "destination is required"})
		return
	}

	if err := h.repo.Create(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"promotion": req})
}

func (h *PromotionHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.Promotion
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	req.ID = id

	if err := h.repo.Update(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotion": req})
}

func (h *PromotionHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/service/reports"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/reports", h.report)
}

func (h *ReportHandler) report(c *gin.Context) {
	period := c.DefaultQuery("period", "this_month")

	summary, err := h.service.Report(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": summary})
}

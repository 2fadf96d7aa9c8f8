package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	var req dto.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.To.IsZero() {
		req.To = time.Now()
	}
	if req.From.IsZero() {
		req.From = req.To.AddDate(0, -1, 0)
	}

	report, err := h.reports.Sales(c.Request.Context(), req.From, req.To)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

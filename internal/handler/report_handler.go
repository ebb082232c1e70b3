package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solasapp/solas-backend-go/internal/models"
	"github.com/solasapp/solas-backend-go/internal/service"
	"github.com/solasapp/solas-backend-go/pkg/response"
)

// ReportHandler serves the daily-interval and weekly-summary data series.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles POST /api/v1/reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user_id and timestamp are required")
		return
	}

	report, err := h.reportService.Daily(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, report)
}

// Weekly handles POST /api/v1/reports/weekly
func (h *ReportHandler) Weekly(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user_id and timestamp are required")
		return
	}

	report, err := h.reportService.Weekly(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, report)
}

func respondServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.BadRequest(c, verr.Error())
		return
	}
	response.InternalError(c, err.Error())
}

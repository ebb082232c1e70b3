package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/solasapp/solas-backend-go/internal/models"
	"github.com/solasapp/solas-backend-go/internal/service"
	"github.com/solasapp/solas-backend-go/pkg/response"
)

// LocationHandler handles the sample ingest endpoint.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CheckLocation handles POST /api/v1/check-location
func (h *LocationHandler) CheckLocation(c *gin.Context) {
	var req models.CheckLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing or malformed required fields")
		return
	}

	result, err := h.locationService.CheckLocation(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(c, verr.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	if result.Paused {
		response.Success(c, gin.H{
			"paused":  true,
			"message": "Data collection paused during nighttime",
		})
		return
	}

	s := result.Sample
	response.Success(c, models.CheckLocationResponse{
		IsOutside:           s.IsOutside,
		GPSAccuracy:         s.GPSAccuracy,
		TimeOutside:         s.SessionSeconds,
		TotalTimeOutside:    s.LifetimeSeconds,
		TotalTimeOutsideDay: s.DailySeconds,
		Weather:             s.Weather,
		Temperature:         s.Temperature,
		UV:                  s.UV,
	})
}

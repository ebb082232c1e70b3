package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/solasapp/solas-backend-go/internal/models"
	"github.com/solasapp/solas-backend-go/internal/service"
	"github.com/solasapp/solas-backend-go/pkg/response"
)

// FeedbackHandler handles verdict-accuracy feedback submission.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "user_id, timestamp, correct_result and gps_accuracy are required")
		return
	}

	if _, err := h.feedbackService.Submit(c.Request.Context(), &req); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Feedback submitted successfully"})
}

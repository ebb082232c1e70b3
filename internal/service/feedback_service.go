package service

import (
	"context"
	"math"
	"time"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// FeedbackStore persists verdict-accuracy feedback.
type FeedbackStore interface {
	Insert(ctx context.Context, f *models.Feedback) error
}

// FeedbackService records whether users agree with their outdoor verdicts.
type FeedbackService struct {
	store FeedbackStore
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

// Submit validates and stores one feedback record.
func (s *FeedbackService) Submit(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, invalid("timestamp", "must be RFC3339 with offset")
	}

	f := &models.Feedback{
		UserID:        req.UserID,
		Timestamp:     at,
		CorrectResult: *req.CorrectResult,
		GPSAccuracy:   math.Round(*req.GPSAccuracy*100) / 100,
	}
	if err := s.store.Insert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

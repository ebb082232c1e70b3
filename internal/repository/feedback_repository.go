package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// FeedbackRepository stores verdict-accuracy feedback from users.
type FeedbackRepository struct {
	db *sql.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert appends one feedback record and fills in its assigned ID.
func (r *FeedbackRepository) Insert(ctx context.Context, f *models.Feedback) error {
	_, offset := f.Timestamp.Zone()
	query := `INSERT INTO feedback (user_id, ts, tz_offset, correct_result, gps_accuracy)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		f.UserID, f.Timestamp.Unix(), offset, f.CorrectResult, f.GPSAccuracy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	f.ID = id
	return nil
}

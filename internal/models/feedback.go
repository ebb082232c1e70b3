package models

import "time"

// Feedback is one user judgement of whether the outdoor verdict was right,
// recorded with the accuracy reading that produced it.
type Feedback struct {
	ID            int64     `json:"id" db:"id"`
	UserID        string    `json:"userId" db:"user_id"`
	Timestamp     time.Time `json:"timestamp" db:"ts"`
	CorrectResult bool      `json:"correctResult" db:"correct_result"`
	GPSAccuracy   float64   `json:"gpsAccuracy" db:"gps_accuracy"`
}

// FeedbackRequest is the submit-feedback payload.
type FeedbackRequest struct {
	UserID        string   `json:"user_id" binding:"required"`
	Timestamp     string   `json:"timestamp" binding:"required"`
	CorrectResult *bool    `json:"correct_result" binding:"required"`
	GPSAccuracy   *float64 `json:"gps_accuracy" binding:"required"`
}

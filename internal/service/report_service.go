package service

import (
	"context"
	"time"

	"github.com/solasapp/solas-backend-go/internal/daylight"
	"github.com/solasapp/solas-backend-go/internal/models"
	"github.com/solasapp/solas-backend-go/internal/report"
)

// ReportService reconstructs outdoor periods and aggregates daily totals for
// the rendering consumers. All operations are read-only.
type ReportService struct {
	store SampleStore
}

// NewReportService creates a new report service
func NewReportService(store SampleStore) *ReportService {
	return &ReportService{store: store}
}

// Daily rebuilds the outdoor intervals for the calendar day containing the
// request timestamp, clipped to the daylight window. The request timestamp
// doubles as "now" for a still-open session.
func (s *ReportService) Daily(ctx context.Context, req *models.ReportRequest) (*models.DailyReport, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, invalid("timestamp", "must be RFC3339 with offset")
	}
	if req.Sunrise == "" || req.Sunset == "" {
		return nil, invalid("sunrise/sunset", "required for the daily report")
	}
	if _, err := daylight.ParseClock(req.Sunrise); err != nil {
		return nil, invalid("sunrise", "must be HH:MM")
	}
	if _, err := daylight.ParseClock(req.Sunset); err != nil {
		return nil, invalid("sunset", "must be HH:MM")
	}

	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	samples, err := s.store.Between(ctx, req.UserID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	intervals := report.Reconstruct(samples, at)
	intervals = daylight.ClipToWindow(intervals, req.Sunrise, req.Sunset, at)

	var secondsOutside int64
	if len(samples) > 0 {
		secondsOutside = samples[len(samples)-1].DailySeconds
	}

	return &models.DailyReport{
		Date:           dayStart.Format("2006-01-02"),
		Sunrise:        req.Sunrise,
		Sunset:         req.Sunset,
		Intervals:      intervals,
		SecondsOutside: secondsOutside,
		TimeOutside:    report.FormatSeconds(secondsOutside),
	}, nil
}

var weekDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekly returns Monday..Sunday of the week containing the request timestamp
// with each day's final daily total, in hours and seconds. Days without
// samples report zero.
func (s *ReportService) Weekly(ctx context.Context, req *models.ReportRequest) (*models.WeeklyReport, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, invalid("timestamp", "must be RFC3339 with offset")
	}

	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	weekStart := dayStart.AddDate(0, 0, -((int(at.Weekday()) + 6) % 7)) // back to Monday
	weekEnd := weekStart.AddDate(0, 0, 7)

	totals, err := s.store.LatestDailyTotals(ctx, req.UserID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	out := &models.WeeklyReport{
		Days:    weekDayNames,
		Hours:   make([]float64, 7),
		Seconds: make([]int64, 7),
	}
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		secs := totals[day]
		out.Seconds[i] = secs
		out.Hours[i] = float64(secs) / 3600
	}
	return out, nil
}

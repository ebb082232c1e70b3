// Package report rebuilds discrete outdoor periods from the sparse,
// cumulative sample stream for downstream rendering. Only a coarse
// outside/inside flag and running counters are persisted per sample, so the
// reconstruction is a best estimate: sessions that open and close between two
// polls are invisible.
package report

import (
	"fmt"
	"time"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// Reconstruct replays one user's samples for one day, in timestamp order,
// into disjoint outdoor intervals. A session still open at the last sample is
// closed at now. When the day's first sample is already outside with accrued
// session time, the session must have begun before the first record (a
// midnight straddle or an instrumentation gap); its start is backdated by the
// accrued seconds.
func Reconstruct(samples []models.Sample, now time.Time) []models.OutdoorInterval {
	var intervals []models.OutdoorInterval
	var pending *time.Time
	prevOutside := false

	for i, s := range samples {
		switch {
		case i == 0 && s.IsOutside:
			start := s.Timestamp.Add(-time.Duration(s.SessionSeconds) * time.Second)
			pending = &start
		case s.IsOutside && !prevOutside:
			start := s.Timestamp
			pending = &start
		case !s.IsOutside && prevOutside && pending != nil:
			intervals = append(intervals, models.OutdoorInterval{Start: *pending, End: s.Timestamp})
			pending = nil
		}
		prevOutside = s.IsOutside
	}

	if pending != nil {
		intervals = append(intervals, models.OutdoorInterval{Start: *pending, End: now})
	}
	return intervals
}

// FormatSeconds renders a seconds total as h:mm:ss.
func FormatSeconds(total int64) string {
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

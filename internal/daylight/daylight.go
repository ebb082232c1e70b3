// Package daylight decides whether samples fall inside the admissible
// daylight window and provides the window math shared by ingest and
// reporting. Sunrise/sunset arrive from the client as "HH:MM" local
// time-of-day strings; all comparisons happen in the observation
// timestamp's own offset.
package daylight

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// ClockLayout is the accepted time-of-day format for sunrise/sunset.
const ClockLayout = "15:04"

// ParseClock parses an "HH:MM" string into seconds since local midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}

// SecondsIntoDay returns the seconds elapsed since midnight in t's location.
func SecondsIntoDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// Admit reports whether the observation time falls within [sunrise, sunset].
// When either bound is absent the gate is bypassed and every observation is
// admitted; callers that require bounds must enforce that themselves.
// Malformed bounds reject the observation rather than failing the request.
func Admit(sunrise, sunset string, at time.Time) bool {
	if sunrise == "" || sunset == "" {
		return true
	}
	rise, err := ParseClock(sunrise)
	if err != nil {
		log.Warn().Err(err).Str("sunrise", sunrise).Msg("rejecting sample: bad sunrise")
		return false
	}
	set, err := ParseClock(sunset)
	if err != nil {
		log.Warn().Err(err).Str("sunset", sunset).Msg("rejecting sample: bad sunset")
		return false
	}
	now := SecondsIntoDay(at)
	return rise <= now && now <= set
}

// AvailableHours returns the daylight span (sunset - sunrise) in fractional
// hours, or 0 when either bound is missing or malformed.
func AvailableHours(sunrise, sunset string) float64 {
	if sunrise == "" || sunset == "" {
		return 0
	}
	rise, err := ParseClock(sunrise)
	if err != nil {
		return 0
	}
	set, err := ParseClock(sunset)
	if err != nil {
		return 0
	}
	if set < rise {
		return 0
	}
	return float64(set-rise) / 3600
}

// Instant combines the clock string with day's calendar date, in day's
// location.
func Instant(clock string, day time.Time) (time.Time, error) {
	secs, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(secs) * time.Second), nil
}

// ClipToWindow truncates intervals at the daylight window for the given day
// and drops any interval that is empty after clipping. Unknown or malformed
// bounds leave the intervals untouched.
func ClipToWindow(intervals []models.OutdoorInterval, sunrise, sunset string, day time.Time) []models.OutdoorInterval {
	if sunrise == "" || sunset == "" {
		return intervals
	}
	rise, err := Instant(sunrise, day)
	if err != nil {
		return intervals
	}
	set, err := Instant(sunset, day)
	if err != nil {
		return intervals
	}

	clipped := make([]models.OutdoorInterval, 0, len(intervals))
	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if start.Before(rise) {
			start = rise
		}
		if end.After(set) {
			end = set
		}
		if start.Before(end) {
			clipped = append(clipped, models.OutdoorInterval{Start: start, End: end})
		}
	}
	return clipped
}

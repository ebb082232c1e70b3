package report

import (
	"testing"
	"time"

	"github.com/solasapp/solas-backend-go/internal/models"
)

var tz = time.FixedZone("", 3600)

func at(hour, min int) time.Time {
	return time.Date(2025, 5, 4, hour, min, 0, 0, tz)
}

func sample(t time.Time, outside bool, session int64) models.Sample {
	return models.Sample{Timestamp: t, IsOutside: outside, SessionSeconds: session}
}

func TestReconstruct(t *testing.T) {
	now := at(12, 0)

	tests := []struct {
		name    string
		samples []models.Sample
		want    []models.OutdoorInterval
	}{
		{
			name: "single closed period",
			samples: []models.Sample{
				sample(at(9, 0), false, 0),
				sample(at(9, 10), true, 0),
				sample(at(9, 40), true, 1800),
				sample(at(9, 45), false, 0),
			},
			want: []models.OutdoorInterval{{Start: at(9, 10), End: at(9, 45)}},
		},
		{
			name: "open period closes at now",
			samples: []models.Sample{
				sample(at(9, 0), false, 0),
				sample(at(11, 30), true, 0),
			},
			want: []models.OutdoorInterval{{Start: at(11, 30), End: now}},
		},
		{
			name: "truncated session start is backdated",
			samples: []models.Sample{
				sample(at(7, 0), true, 600), // session began before the first record
				sample(at(7, 20), false, 0),
			},
			want: []models.OutdoorInterval{{Start: at(6, 50), End: at(7, 20)}},
		},
		{
			name: "multiple periods",
			samples: []models.Sample{
				sample(at(8, 0), false, 0),
				sample(at(8, 30), true, 0),
				sample(at(9, 0), false, 0),
				sample(at(10, 0), true, 0),
				sample(at(10, 30), false, 0),
			},
			want: []models.OutdoorInterval{
				{Start: at(8, 30), End: at(9, 0)},
				{Start: at(10, 0), End: at(10, 30)},
			},
		},
		{
			name:    "no samples",
			samples: nil,
			want:    nil,
		},
		{
			name: "all inside",
			samples: []models.Sample{
				sample(at(9, 0), false, 0),
				sample(at(9, 30), false, 0),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconstruct(tt.samples, now)
			assertIntervals(t, got, tt.want)

			// Replaying the same stream must give the same intervals.
			again := Reconstruct(tt.samples, now)
			assertIntervals(t, again, tt.want)
		})
	}
}

func assertIntervals(t *testing.T, got, want []models.OutdoorInterval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d intervals, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("interval %d = [%v, %v), want [%v, %v)", i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{seconds: 0, want: "0:00:00"},
		{seconds: 59, want: "0:00:59"},
		{seconds: 3661, want: "1:01:01"},
		{seconds: 45296, want: "12:34:56"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// Package accrual holds the outdoor-exposure accounting core: the classifier
// that turns raw readings into outdoor/indoor verdicts and the state machine
// that advances a user's session, daily, and lifetime counters from one
// sample to the next.
package accrual

import (
	"time"

	"github.com/solasapp/solas-backend-go/internal/daylight"
	"github.com/solasapp/solas-backend-go/internal/models"
)

// Machine advances the per-user accrual counters. It is a pure computation:
// reading the previous sample and persisting the result belong to the caller,
// which must serialize calls per user.
type Machine struct {
	// MaxGap caps the seconds credited for any single inter-sample interval.
	// It bridges missed polls without over-crediting a client that went
	// silent for hours.
	MaxGap time.Duration
}

// Result is the counter set for the next sample.
type Result struct {
	IsOutside       bool
	SessionSeconds  int64
	LifetimeSeconds int64
	DailySeconds    int64
	Delta           int64 // seconds credited by this transition
}

// Advance computes the next counters from the previous persisted sample and a
// fresh verdict. prev may be nil for a user's first sample ever. now must
// carry the client's own UTC offset; day boundaries and the sunset clamp are
// evaluated in that offset. sunset is an optional "HH:MM" bound: a verdict of
// outside past sunset is forced closed, credited only up to the sunset
// instant.
func (m Machine) Advance(prev *models.Sample, now time.Time, verdict bool, sunset string) Result {
	sunsetAt := sunsetInstant(sunset, now)

	if prev == nil {
		// No previous instant to accrue from; the first sample only
		// establishes state.
		if verdict && sunsetAt != nil && now.After(*sunsetAt) {
			verdict = false
		}
		return Result{IsOutside: verdict}
	}

	delta := m.clamp(now.Sub(prev.Timestamp))
	if verdict && sunsetAt != nil && now.After(*sunsetAt) {
		// Forced closure: never credit outdoor time past sunset.
		verdict = false
		delta = m.clamp(sunsetAt.Sub(prev.Timestamp))
	}

	lifetime := prev.LifetimeSeconds
	daily := prev.DailySeconds
	if dayAfter(now, prev.Timestamp) {
		// New calendar day: the stale total is discarded before this
		// transition's own contribution is applied.
		daily = 0
	}

	var session int64
	switch {
	case prev.IsOutside && verdict: // session continues
		session = prev.SessionSeconds + delta
	case prev.IsOutside && !verdict: // session closes, credit up to the transition
		session = 0
	case !prev.IsOutside && verdict: // session opens
		session = delta
	default: // still inside
		session = 0
	}

	if verdict || prev.IsOutside {
		lifetime += delta
		daily += delta
	} else {
		delta = 0
	}

	return Result{
		IsOutside:       verdict,
		SessionSeconds:  session,
		LifetimeSeconds: lifetime,
		DailySeconds:    daily,
		Delta:           delta,
	}
}

func (m Machine) clamp(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	if d > m.MaxGap {
		d = m.MaxGap
	}
	return int64(d / time.Second)
}

// sunsetInstant resolves the sunset clock string on now's calendar date, in
// now's offset. A missing or malformed bound disables the clamp.
func sunsetInstant(sunset string, now time.Time) *time.Time {
	if sunset == "" {
		return nil
	}
	at, err := daylight.Instant(sunset, now)
	if err != nil {
		return nil
	}
	return &at
}

// dayAfter reports whether a's local calendar date is strictly after b's.
// Each timestamp is read in its own offset.
func dayAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}

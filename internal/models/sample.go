package models

import "time"

// Sample is one persisted observation of a user's location/environment state
// plus the accrual counters computed from it. Samples are append-only: a bad
// accrual is corrected by inserting a compensating sample, never by mutation.
type Sample struct {
	ID              int64     `json:"id" db:"id"`
	UserID          string    `json:"userId" db:"user_id"`
	Timestamp       time.Time `json:"timestamp" db:"ts"` // carries the client's own UTC offset
	IsOutside       bool      `json:"isOutside" db:"is_outside"`
	SessionSeconds  int64     `json:"sessionSeconds" db:"session_seconds"`
	LifetimeSeconds int64     `json:"lifetimeSeconds" db:"lifetime_seconds"`
	DailySeconds    int64     `json:"dailySeconds" db:"daily_seconds"`
	DaylightHours   float64   `json:"daylightHours" db:"daylight_hours"` // sunset - sunrise, 0 when unknown

	// Observational fields, carried through unchanged
	GPSAccuracy     float64  `json:"gpsAccuracy" db:"gps_accuracy"`
	ConnectedToWifi bool     `json:"connectedToWifi" db:"wifi"`
	Weather         string   `json:"weather,omitempty" db:"weather"`
	Temperature     *float64 `json:"temperature,omitempty" db:"temperature"`
	UV              *float64 `json:"uv,omitempty" db:"uv"`
	Lux             *float64 `json:"lux,omitempty" db:"lux"`
	Latitude        *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64 `json:"longitude,omitempty" db:"longitude"`
	DistanceMeters  *float64 `json:"distanceMeters,omitempty" db:"distance_m"` // moved since previous sample, when both carry coordinates
}

// CheckLocationRequest is the ingest payload. Timestamp is the client's own
// clock as RFC3339 with an explicit offset; all day-boundary and time-of-day
// logic evaluates in that offset.
type CheckLocationRequest struct {
	UserID          string   `json:"user_id" binding:"required"`
	Timestamp       string   `json:"timestamp" binding:"required"`
	GPSAccuracy     *float64 `json:"gps_accuracy" binding:"required"`
	ConnectedToWifi bool     `json:"is_connected_to_wifi"`
	Sunrise         string   `json:"sunrise"` // "HH:MM" local time-of-day, optional
	Sunset          string   `json:"sunset"`
	Weather         string   `json:"weather"`
	Temperature     *float64 `json:"temperature"`
	UV              *float64 `json:"uv"`
	Lux             *float64 `json:"lux"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// CheckLocationResult is the outcome of one ingest attempt. Paused marks a
// nighttime skip: nothing was classified or stored, and Sample is nil.
type CheckLocationResult struct {
	Paused bool    `json:"paused"`
	Sample *Sample `json:"sample,omitempty"`
}

// CheckLocationResponse mirrors the wire contract of the mobile client.
type CheckLocationResponse struct {
	IsOutside           bool     `json:"is_outside"`
	GPSAccuracy         float64  `json:"gps_accuracy"`
	TimeOutside         int64    `json:"time_outside"`
	TotalTimeOutside    int64    `json:"total_time_outside"`
	TotalTimeOutsideDay int64    `json:"total_time_outside_for_given_day"`
	Weather             string   `json:"weather,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty"`
	UV                  *float64 `json:"uv,omitempty"`
}

// ReportRequest selects the calendar day (or week) containing Timestamp,
// evaluated in the timestamp's own offset.
type ReportRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Timestamp string `json:"timestamp" binding:"required"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
}

// OutdoorInterval is one reconstructed outdoor period, clipped to the
// daylight window.
type OutdoorInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DailyReport is the data series behind the daily sun-arc visualization.
type DailyReport struct {
	Date           string            `json:"date"`
	Sunrise        string            `json:"sunrise"`
	Sunset         string            `json:"sunset"`
	Intervals      []OutdoorInterval `json:"intervals"`
	SecondsOutside int64             `json:"seconds_outside"`
	TimeOutside    string            `json:"time_outside"` // h:mm:ss
}

// WeeklyReport is the data series behind the weekly bar chart: Mon..Sun of
// the week containing the request timestamp.
type WeeklyReport struct {
	Days    []string  `json:"days"`
	Hours   []float64 `json:"hours"`
	Seconds []int64   `json:"seconds"`
}

// WeatherObservation is the minimal current-conditions snapshot used to
// default missing observational fields on ingest.
type WeatherObservation struct {
	Weather     string   `json:"weather"`
	Temperature *float64 `json:"temperature"`
	UV          *float64 `json:"uv"`
}

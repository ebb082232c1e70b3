package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// SampleRepository is the sqlite-backed sample store. The samples table is
// append-only and ordered per user by timestamp; rows are never updated or
// deleted.
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

const sampleColumns = `id, user_id, ts, tz_offset, is_outside, session_seconds,
	lifetime_seconds, daily_seconds, daylight_hours, gps_accuracy, wifi,
	weather, temperature, uv, lux, latitude, longitude, distance_m`

// Append inserts one sample and fills in its assigned ID. Timestamps persist
// as unix seconds plus the client's UTC offset so local calendar-day
// semantics survive the round trip.
func (r *SampleRepository) Append(ctx context.Context, s *models.Sample) error {
	_, offset := s.Timestamp.Zone()
	query := `INSERT INTO samples (user_id, ts, tz_offset, is_outside, session_seconds,
		lifetime_seconds, daily_seconds, daylight_hours, gps_accuracy, wifi,
		weather, temperature, uv, lux, latitude, longitude, distance_m)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		s.UserID, s.Timestamp.Unix(), offset, s.IsOutside, s.SessionSeconds,
		s.LifetimeSeconds, s.DailySeconds, s.DaylightHours, s.GPSAccuracy, s.ConnectedToWifi,
		s.Weather, s.Temperature, s.UV, s.Lux, s.Latitude, s.Longitude, s.DistanceMeters,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	s.ID = id
	return nil
}

// MostRecent returns the latest sample for a user by timestamp, or nil when
// the user has no samples yet.
func (r *SampleRepository) MostRecent(ctx context.Context, userID string) (*models.Sample, error) {
	query := fmt.Sprintf(`SELECT %s FROM samples WHERE user_id = ? ORDER BY ts DESC LIMIT 1`, sampleColumns)

	s, err := scanSample(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query most recent sample: %w", err)
	}
	return s, nil
}

// Between returns a user's samples in [t0, t1), ordered by timestamp.
func (r *SampleRepository) Between(ctx context.Context, userID string, t0, t1 time.Time) ([]models.Sample, error) {
	query := fmt.Sprintf(`SELECT %s FROM samples
		WHERE user_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC`, sampleColumns)

	rows, err := r.db.QueryContext(ctx, query, userID, t0.Unix(), t1.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate samples: %w", err)
	}
	return samples, nil
}

// LatestDailyTotals returns, for each local calendar day in [from, to), the
// daily_seconds of that day's last sample, keyed by "2006-01-02". Days with
// no samples are absent. Local dates are derived from each row's own stored
// offset, so the grouping is done here rather than in SQL.
func (r *SampleRepository) LatestDailyTotals(ctx context.Context, userID string, from, to time.Time) (map[string]int64, error) {
	query := `SELECT ts, tz_offset, daily_seconds FROM samples
		WHERE user_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var ts int64
		var offset int
		var daily int64
		if err := rows.Scan(&ts, &offset, &daily); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		day := time.Unix(ts, 0).In(time.FixedZone("", offset)).Format("2006-01-02")
		totals[day] = daily // ascending order, so the last write per day wins
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily totals: %w", err)
	}
	return totals, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSample(row rowScanner) (*models.Sample, error) {
	var s models.Sample
	var ts int64
	var offset int
	err := row.Scan(
		&s.ID, &s.UserID, &ts, &offset, &s.IsOutside, &s.SessionSeconds,
		&s.LifetimeSeconds, &s.DailySeconds, &s.DaylightHours, &s.GPSAccuracy, &s.ConnectedToWifi,
		&s.Weather, &s.Temperature, &s.UV, &s.Lux, &s.Latitude, &s.Longitude, &s.DistanceMeters,
	)
	if err != nil {
		return nil, err
	}
	s.Timestamp = time.Unix(ts, 0).In(time.FixedZone("", offset))
	return &s, nil
}

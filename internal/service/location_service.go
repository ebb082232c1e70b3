package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solasapp/solas-backend-go/internal/accrual"
	"github.com/solasapp/solas-backend-go/internal/daylight"
	"github.com/solasapp/solas-backend-go/internal/models"
	"github.com/solasapp/solas-backend-go/internal/spatial"
)

// SampleStore is the append-only, per-user, time-ordered sample ledger. The
// sqlite repository implements it; tests substitute an in-memory fake.
type SampleStore interface {
	Append(ctx context.Context, s *models.Sample) error
	MostRecent(ctx context.Context, userID string) (*models.Sample, error)
	Between(ctx context.Context, userID string, t0, t1 time.Time) ([]models.Sample, error)
	LatestDailyTotals(ctx context.Context, userID string, from, to time.Time) (map[string]int64, error)
}

// LocationService runs the ingest pipeline: daylight gate, classifier,
// accrual state machine, store append. The read-advance-append sequence runs
// under a per-user lock so overlapping requests from the same device cannot
// both read the same previous sample and double-credit a gap.
type LocationService struct {
	store      SampleStore
	classifier accrual.Classifier
	machine    accrual.Machine
	weather    WeatherProvider // optional, defaults missing observation fields
	locks      sync.Map        // user id -> *sync.Mutex
}

// NewLocationService creates a new location service. weather may be nil.
func NewLocationService(store SampleStore, classifier accrual.Classifier, machine accrual.Machine, weather WeatherProvider) *LocationService {
	return &LocationService{
		store:      store,
		classifier: classifier,
		machine:    machine,
		weather:    weather,
	}
}

// CheckLocation processes one client sample. A nighttime rejection is a
// normal outcome, not an error: the result is marked paused, nothing is
// classified or stored.
func (s *LocationService) CheckLocation(ctx context.Context, req *models.CheckLocationRequest) (*models.CheckLocationResult, error) {
	at, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return nil, invalid("timestamp", "must be RFC3339 with offset")
	}

	if !daylight.Admit(req.Sunrise, req.Sunset, at) {
		log.Debug().Str("user", req.UserID).Time("at", at).Msg("sample outside daylight window")
		return &models.CheckLocationResult{Paused: true}, nil
	}

	accuracy := math.Round(*req.GPSAccuracy*100) / 100
	verdict := s.classifier.Outside(accuracy, req.ConnectedToWifi)

	mu := s.userLock(req.UserID)
	mu.Lock()
	defer mu.Unlock()

	prev, err := s.store.MostRecent(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	res := s.machine.Advance(prev, at, verdict, req.Sunset)

	sample := &models.Sample{
		UserID:          req.UserID,
		Timestamp:       at,
		IsOutside:       res.IsOutside,
		SessionSeconds:  res.SessionSeconds,
		LifetimeSeconds: res.LifetimeSeconds,
		DailySeconds:    res.DailySeconds,
		DaylightHours:   daylight.AvailableHours(req.Sunrise, req.Sunset),
		GPSAccuracy:     accuracy,
		ConnectedToWifi: req.ConnectedToWifi,
		Weather:         req.Weather,
		Temperature:     req.Temperature,
		UV:              req.UV,
		Lux:             req.Lux,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}
	s.fillWeather(sample)
	if prev != nil {
		sample.DistanceMeters = distanceMoved(prev, sample)
	}

	if err := s.store.Append(ctx, sample); err != nil {
		return nil, err
	}

	log.Info().
		Str("user", sample.UserID).
		Bool("outside", sample.IsOutside).
		Int64("delta", res.Delta).
		Int64("daily", sample.DailySeconds).
		Msg("sample recorded")

	return &models.CheckLocationResult{Sample: sample}, nil
}

// fillWeather defaults observation fields the client omitted from the current
// weather snapshot. The provider is injected, never ambient state.
func (s *LocationService) fillWeather(sample *models.Sample) {
	if s.weather != nil && (sample.Weather == "" || sample.Temperature == nil || sample.UV == nil) {
		obs := s.weather.Current()
		if sample.Weather == "" {
			sample.Weather = obs.Weather
		}
		if sample.Temperature == nil {
			sample.Temperature = obs.Temperature
		}
		if sample.UV == nil {
			sample.UV = obs.UV
		}
	}
	if sample.Weather == "" {
		sample.Weather = "Unknown"
	}
}

func (s *LocationService) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// distanceMoved returns the haversine distance between consecutive samples,
// or nil when either lacks coordinates.
func distanceMoved(prev, cur *models.Sample) *float64 {
	if prev.Latitude == nil || prev.Longitude == nil || cur.Latitude == nil || cur.Longitude == nil {
		return nil
	}
	d := spatial.HaversineDistance(*prev.Latitude, *prev.Longitude, *cur.Latitude, *cur.Longitude)
	return &d
}

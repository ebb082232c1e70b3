package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/solasapp/solas-backend-go/internal/accrual"
	"github.com/solasapp/solas-backend-go/internal/models"
)

// memStore is an in-memory SampleStore for tests. failing simulates an
// unavailable backing store.
type memStore struct {
	mu      sync.Mutex
	samples []models.Sample
	failing bool
}

var errStoreDown = errors.New("store unavailable")

func (m *memStore) Append(_ context.Context, s *models.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errStoreDown
	}
	s.ID = int64(len(m.samples) + 1)
	m.samples = append(m.samples, *s)
	return nil
}

func (m *memStore) MostRecent(_ context.Context, userID string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errStoreDown
	}
	var latest *models.Sample
	for i := range m.samples {
		s := m.samples[i]
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.Timestamp.After(latest.Timestamp) {
			latest = &m.samples[i]
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (m *memStore) Between(_ context.Context, userID string, t0, t1 time.Time) ([]models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Sample
	for _, s := range m.samples {
		if s.UserID == userID && !s.Timestamp.Before(t0) && s.Timestamp.Before(t1) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) LatestDailyTotals(_ context.Context, userID string, from, to time.Time) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := make(map[string]int64)
	for _, s := range m.samples {
		if s.UserID == userID && !s.Timestamp.Before(from) && s.Timestamp.Before(to) {
			totals[s.Timestamp.Format("2006-01-02")] = s.DailySeconds
		}
	}
	return totals, nil
}

func newTestService(store SampleStore, weather WeatherProvider) *LocationService {
	return NewLocationService(
		store,
		accrual.Classifier{AccuracyThreshold: 15},
		accrual.Machine{MaxGap: 600 * time.Second},
		weather,
	)
}

func ingestRequest(user, ts string, accuracy float64, wifi bool) *models.CheckLocationRequest {
	return &models.CheckLocationRequest{
		UserID:          user,
		Timestamp:       ts,
		GPSAccuracy:     &accuracy,
		ConnectedToWifi: wifi,
	}
}

func TestCheckLocationNighttimePause(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, nil)

	req := ingestRequest("u1", "2025-06-10T22:30:00+02:00", 5, false)
	req.Sunrise = "05:30"
	req.Sunset = "21:45"

	result, err := svc.CheckLocation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Paused {
		t.Error("expected nighttime sample to be paused")
	}
	if len(store.samples) != 0 {
		t.Errorf("paused sample must not be stored, found %d rows", len(store.samples))
	}
}

func TestCheckLocationBadTimestamp(t *testing.T) {
	svc := newTestService(&memStore{}, nil)

	_, err := svc.CheckLocation(context.Background(), ingestRequest("u1", "10 Jun 2025 09:00", 5, false))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCheckLocationStoreUnavailable(t *testing.T) {
	svc := newTestService(&memStore{failing: true}, nil)

	_, err := svc.CheckLocation(context.Background(), ingestRequest("u1", "2025-06-10T09:00:00+02:00", 5, false))
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("store failure must not be a validation error: %v", err)
	}
}

func TestCheckLocationAccrues(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	first, err := svc.CheckLocation(ctx, ingestRequest("u1", "2025-06-10T09:00:00+02:00", 5, false))
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if !first.Sample.IsOutside || first.Sample.LifetimeSeconds != 0 {
		t.Fatalf("first sample = %+v, want outside with zero totals", first.Sample)
	}

	second, err := svc.CheckLocation(ctx, ingestRequest("u1", "2025-06-10T09:05:00+02:00", 5, false))
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	s := second.Sample
	if s.SessionSeconds != 300 || s.LifetimeSeconds != 300 || s.DailySeconds != 300 {
		t.Errorf("second sample counters = %d/%d/%d, want 300/300/300",
			s.SessionSeconds, s.LifetimeSeconds, s.DailySeconds)
	}

	// Wifi association flips the verdict: session closes with credit.
	third, err := svc.CheckLocation(ctx, ingestRequest("u1", "2025-06-10T09:10:00+02:00", 5, true))
	if err != nil {
		t.Fatalf("third ingest: %v", err)
	}
	if third.Sample.IsOutside {
		t.Error("wifi-connected sample classified outside")
	}
	if third.Sample.SessionSeconds != 0 || third.Sample.LifetimeSeconds != 600 {
		t.Errorf("third sample = session %d lifetime %d, want 0/600",
			third.Sample.SessionSeconds, third.Sample.LifetimeSeconds)
	}
}

func TestCheckLocationSerializesPerUser(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	if _, err := svc.CheckLocation(ctx, ingestRequest("u1", "2025-06-10T09:00:00+02:00", 5, false)); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}

	// A retried request arriving in parallel must not double-credit the gap:
	// whichever request wins the lock credits 300s, the loser reads the
	// winner's sample as previous and credits a zero-length gap.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckLocation(ctx, ingestRequest("u1", "2025-06-10T09:05:00+02:00", 5, false))
			if err != nil {
				t.Errorf("concurrent ingest: %v", err)
			}
		}()
	}
	wg.Wait()

	latest, err := store.MostRecent(ctx, "u1")
	if err != nil {
		t.Fatalf("most recent: %v", err)
	}
	if latest.LifetimeSeconds != 300 {
		t.Errorf("LifetimeSeconds = %d, want 300 (gap credited exactly once)", latest.LifetimeSeconds)
	}
}

func TestCheckLocationWeatherDefaults(t *testing.T) {
	temp := 21.5
	provider := StaticWeatherProvider{Obs: models.WeatherObservation{Weather: "Sunny", Temperature: &temp}}
	store := &memStore{}
	svc := newTestService(store, provider)

	result, err := svc.CheckLocation(context.Background(), ingestRequest("u1", "2025-06-10T09:00:00+02:00", 5, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sample.Weather != "Sunny" {
		t.Errorf("Weather = %q, want provider default", result.Sample.Weather)
	}
	if result.Sample.Temperature == nil || *result.Sample.Temperature != 21.5 {
		t.Errorf("Temperature = %v, want 21.5", result.Sample.Temperature)
	}

	// Client-supplied fields win over the provider.
	req := ingestRequest("u1", "2025-06-10T09:05:00+02:00", 5, false)
	req.Weather = "Overcast"
	result, err = svc.CheckLocation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sample.Weather != "Overcast" {
		t.Errorf("Weather = %q, want client value", result.Sample.Weather)
	}
}

func TestCheckLocationDistanceMoved(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	lat1, lon1 := 53.3498, -6.2603
	req := ingestRequest("u1", "2025-06-10T09:00:00+01:00", 5, false)
	req.Latitude, req.Longitude = &lat1, &lon1
	if _, err := svc.CheckLocation(ctx, req); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	lat2, lon2 := 53.3500, -6.2603
	req = ingestRequest("u1", "2025-06-10T09:05:00+01:00", 5, false)
	req.Latitude, req.Longitude = &lat2, &lon2
	result, err := svc.CheckLocation(ctx, req)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if result.Sample.DistanceMeters == nil {
		t.Fatal("DistanceMeters not computed for consecutive located samples")
	}
	// ~22m between the two fixes
	if d := *result.Sample.DistanceMeters; d < 15 || d > 30 {
		t.Errorf("DistanceMeters = %v, want roughly 22", d)
	}
}

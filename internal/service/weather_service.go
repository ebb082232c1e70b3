package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solasapp/solas-backend-go/internal/models"
)

// WeatherProvider supplies the current-conditions snapshot used to default
// observation fields the client omitted.
type WeatherProvider interface {
	Current() models.WeatherObservation
}

// StaticWeatherProvider returns a fixed observation. Used in tests and when
// no weather source is configured.
type StaticWeatherProvider struct {
	Obs models.WeatherObservation
}

func (p StaticWeatherProvider) Current() models.WeatherObservation {
	return p.Obs
}

// PollingWeatherProvider refreshes a current-weather snapshot from an HTTP
// endpoint on a fixed interval. The snapshot is guarded by a lock and handed
// out by value; a failed refresh keeps the previous snapshot.
type PollingWeatherProvider struct {
	url      string
	interval time.Duration
	client   *http.Client

	mu  sync.RWMutex
	obs models.WeatherObservation

	stop chan struct{}
	done chan struct{}
}

// NewPollingWeatherProvider creates a provider polling url every interval.
func NewPollingWeatherProvider(url string, interval time.Duration) *PollingWeatherProvider {
	return &PollingWeatherProvider{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling in the background. It refreshes once immediately so
// the first ingest already sees data.
func (p *PollingWeatherProvider) Start() {
	go func() {
		defer close(p.done)
		p.refresh()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.refresh()
			case <-p.stop:
				return
			}
		}
	}()
}

// Stop ends polling and waits for the poll loop to exit.
func (p *PollingWeatherProvider) Stop() {
	close(p.stop)
	<-p.done
}

// Current returns the latest snapshot.
func (p *PollingWeatherProvider) Current() models.WeatherObservation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.obs
}

func (p *PollingWeatherProvider) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		log.Warn().Err(err).Msg("weather refresh: bad request")
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("weather refresh failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("weather refresh: unexpected status")
		return
	}

	var obs models.WeatherObservation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		log.Warn().Err(err).Msg("weather refresh: bad payload")
		return
	}

	p.mu.Lock()
	p.obs = obs
	p.mu.Unlock()
}

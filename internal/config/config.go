package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration, loaded from the environment.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// GPSAccuracyThreshold is the classifier's clear-sky cutoff in meters.
	GPSAccuracyThreshold float64
	// MaxSampleGap caps the outdoor seconds credited for any single
	// inter-sample interval.
	MaxSampleGap time.Duration

	// Current-weather provider; polling is disabled when the URL is empty.
	WeatherURL     string
	WeatherRefresh time.Duration

	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	cfg := &Config{
		Port:                 getEnv("PORT", ":8080"),
		DBPath:               getEnv("DB_PATH", "./data/solas.db"),
		JWTSecret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GPSAccuracyThreshold: getEnvFloat("GPS_ACCURACY_THRESHOLD", 15),
		MaxSampleGap:         getEnvSeconds("MAX_SAMPLE_GAP_SECONDS", 600*time.Second),
		WeatherURL:           getEnv("WEATHER_URL", ""),
		WeatherRefresh:       getEnvSeconds("WEATHER_REFRESH_SECONDS", 15*time.Minute),
		RateLimit:            getEnvInt("RATE_LIMIT", 120),
		RateWindow:           getEnvSeconds("RATE_WINDOW_SECONDS", time.Minute),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

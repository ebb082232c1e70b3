package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solasapp/solas-backend-go/internal/api"
	"github.com/solasapp/solas-backend-go/internal/config"
	"github.com/solasapp/solas-backend-go/internal/database"
	"github.com/solasapp/solas-backend-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()

	var weather service.WeatherProvider
	if cfg.WeatherURL != "" {
		provider := service.NewPollingWeatherProvider(cfg.WeatherURL, cfg.WeatherRefresh)
		provider.Start()
		defer provider.Stop()
		weather = provider
		log.Info().Str("url", cfg.WeatherURL).Dur("refresh", cfg.WeatherRefresh).Msg("weather polling enabled")
	}

	router := api.SetupRouter(cfg, database.GetDB(), weather)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

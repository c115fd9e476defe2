package main

import (
	"curtainraiser/config"
	"curtainraiser/di"
	"curtainraiser/helper"
	"curtainraiser/shared/logger"
	"curtainraiser/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)
	timezone.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	server, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	server.WithCleanup(cleanup).Serve()
}

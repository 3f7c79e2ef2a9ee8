package main

import (
	"context"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage/backend"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	stg, err := backend.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer stg.Close()

	// Sessions go too, so every driver has to log in again.
	if err := stg.Reset(context.Background()); err != nil {
		log.Error("Failed to reset tables", logger.String("driver", cfg.DBDriver), logger.Error(err))
		return
	}
	log.Info("Successfully removed all manufacturers, cars, drivers and sessions.")
}

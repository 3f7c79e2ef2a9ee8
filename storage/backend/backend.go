// Package backend opens the storage selected by DB_DRIVER.
package backend

import (
	"context"
	"fmt"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
	"taxiservice/storage/postgres"
	"taxiservice/storage/sqlite"
)

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.DriverSQLite, "":
		return sqlite.New(ctx, cfg.SQLiteDSN, log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

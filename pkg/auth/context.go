package auth

import (
	"context"

	"taxiservice/pkg/models"
)

type contextKey string

const driverKey contextKey = "driver"

// ContextWithDriver returns a new context that carries the authenticated driver.
func ContextWithDriver(ctx context.Context, driver *models.Driver) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, driverKey, driver)
}

// DriverFromContext retrieves the authenticated driver from the context, if any.
func DriverFromContext(ctx context.Context) (*models.Driver, bool) {
	if ctx == nil {
		return nil, false
	}
	driver, ok := ctx.Value(driverKey).(*models.Driver)
	if !ok || driver == nil {
		return nil, false
	}
	return driver, true
}

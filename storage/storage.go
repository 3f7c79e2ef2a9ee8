package storage

import (
	"context"
	"errors"

	"taxiservice/pkg/models"
)

var ErrAlreadyExists = errors.New("record already exists")

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Car() ICarStorage
	Driver() IDriverStorage
	Session() ISessionStorage
	// Reset wipes every table; used by cmd/reset_db.
	Reset(ctx context.Context) error
	Close()
}

type IManufacturerStorage interface {
	Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetByName(ctx context.Context, name string) (*models.Manufacturer, error)
	Find(ctx context.Context, filter ListFilter) ([]*models.Manufacturer, error)
	Count(ctx context.Context, search string) (int, error)
}

type ICarStorage interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	Find(ctx context.Context, filter ListFilter) ([]*models.Car, error)
	Count(ctx context.Context, search string) (int, error)
}

type IDriverStorage interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	Find(ctx context.Context, filter ListFilter) ([]*models.Driver, error)
	Count(ctx context.Context, search string) (int, error)
}

type ISessionStorage interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

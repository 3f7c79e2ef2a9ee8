package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type ManufacturerService interface {
	List(ctx context.Context, name string, page int) (*models.Page[*models.Manufacturer], error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetByName(ctx context.Context, name string) (*models.Manufacturer, error)
	Create(ctx context.Context, name string) (*models.Manufacturer, error)
}

type manufacturerService struct {
	stg storage.IManufacturerStorage
	log logger.ILogger
}

func NewManufacturerService(stg storage.IStorage, log logger.ILogger) ManufacturerService {
	return &manufacturerService{
		stg: stg.Manufacturer(),
		log: log,
	}
}

func (s *manufacturerService) List(ctx context.Context, name string, page int) (*models.Page[*models.Manufacturer], error) {
	return listPage[*models.Manufacturer](ctx, s.stg, name, page)
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *manufacturerService) GetByName(ctx context.Context, name string) (*models.Manufacturer, error) {
	return s.stg.GetByName(ctx, strings.TrimSpace(name))
}

func (s *manufacturerService) Create(ctx context.Context, name string) (*models.Manufacturer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	m, err := s.stg.Create(ctx, &models.Manufacturer{Name: name})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("manufacturer %q: %w", name, err)
		}
		return nil, err
	}
	s.log.Info("manufacturer created", logger.Int64("id", m.ID), logger.String("name", m.Name))
	return m, nil
}

package service

import (
	"context"
	"strings"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type CarService interface {
	List(ctx context.Context, model string, page int) (*models.Page[*models.Car], error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	Create(ctx context.Context, model string, manufacturerID int64) (*models.Car, error)
}

type carService struct {
	stg           storage.ICarStorage
	manufacturers storage.IManufacturerStorage
	log           logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		stg:           stg.Car(),
		manufacturers: stg.Manufacturer(),
		log:           log,
	}
}

func (s *carService) List(ctx context.Context, model string, page int) (*models.Page[*models.Car], error) {
	return listPage[*models.Car](ctx, s.stg, model, page)
}

func (s *carService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *carService) Create(ctx context.Context, model string, manufacturerID int64) (*models.Car, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, ErrNameRequired
	}
	m, err := s.manufacturers.GetByID(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrManufacturerNotFound
	}
	car, err := s.stg.Create(ctx, &models.Car{Model: model, ManufacturerID: m.ID, Manufacturer: m})
	if err != nil {
		return nil, err
	}
	s.log.Info("car created", logger.Int64("id", car.ID), logger.String("model", car.Model))
	return car, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type DriverService interface {
	List(ctx context.Context, username string, page int) (*models.Page[*models.Driver], error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	Create(ctx context.Context, in CreateDriverInput) (*models.Driver, error)
}

// CreateDriverInput mirrors the driver creation form. An empty LicenseNumber
// leaves the driver without one unless RequireLicense is set; a non-empty one
// must be valid.
type CreateDriverInput struct {
	Username        string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Email           string
	LicenseNumber   string
	IsStaff         bool
	RequireLicense  bool
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) List(ctx context.Context, username string, page int) (*models.Page[*models.Driver], error) {
	return listPage[*models.Driver](ctx, s.stg, username, page)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	return s.stg.GetByID(ctx, id)
}

// Create validates in and stores the driver. Validation failures are
// returned together, joined; test for them with errors.Is.
func (s *driverService) Create(ctx context.Context, in CreateDriverInput) (*models.Driver, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)

	var errs []error
	if in.Username == "" {
		errs = append(errs, ErrUsernameRequired)
	}
	if in.Password == "" {
		errs = append(errs, ErrPasswordRequired)
	} else if in.Password != in.PasswordConfirm {
		errs = append(errs, ErrPasswordMismatch)
	}
	switch {
	case in.LicenseNumber == "" && in.RequireLicense:
		errs = append(errs, ErrLicenseRequired)
	case in.LicenseNumber != "" && !models.ValidLicenseNumber(in.LicenseNumber):
		errs = append(errs, ErrInvalidLicenseNumber)
	}
	if in.Username != "" {
		existing, err := s.stg.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs = append(errs, ErrUsernameTaken)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	d, err := s.stg.Create(ctx, &models.Driver{
		Username:      in.Username,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.TrimSpace(in.Email),
		LicenseNumber: in.LicenseNumber,
		PasswordHash:  hash,
		IsStaff:       in.IsStaff,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, s.conflict(ctx, in.Username)
		}
		return nil, err
	}
	s.log.Info("driver created", logger.Int64("id", d.ID), logger.String("username", d.Username))
	return d, nil
}

// conflict names the unique field a failed insert collided with. The username
// was free when validated, so finding it taken now means a concurrent insert.
func (s *driverService) conflict(ctx context.Context, username string) error {
	existing, err := s.stg.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}
	return ErrLicenseTaken
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	StartSession(ctx context.Context, driverID int64) (*models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Driver, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	sessions storage.ISessionStorage
	drivers  storage.IDriverStorage
	ttl      time.Duration
	log      logger.ILogger
	now      func() time.Time
}

func NewAuthService(stg storage.IStorage, ttl time.Duration, log logger.ILogger) AuthService {
	return &authService{
		sessions: stg.Session(),
		drivers:  stg.Driver(),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	d, err := s.drivers.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if d == nil || !auth.CheckPassword(d.PasswordHash, password) {
		s.log.Warning("failed login", logger.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if n, err := s.sessions.DeleteExpired(ctx); err != nil {
		s.log.Warning("failed to purge expired sessions", logger.Error(err))
	} else if n > 0 {
		s.log.Debug("purged expired sessions", logger.Int64("count", n))
	}

	return s.StartSession(ctx, d.ID)
}

// StartSession opens a session for driverID without checking credentials.
func (s *authService) StartSession(ctx context.Context, driverID int64) (*models.Session, error) {
	now := s.now().UTC()
	session := &models.Session{
		Token:     uuid.NewString(),
		DriverID:  driverID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate resolves token to its driver. Unknown or expired tokens yield
// nil without an error.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Driver, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warning("failed to delete expired session", logger.Error(err))
		}
		return nil, nil
	}
	return s.drivers.GetByID(ctx, session.DriverID)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

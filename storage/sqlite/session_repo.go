package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type sessionRepo struct {
	db  *bun.DB
	log logger.ILogger
}

func NewSessionRepo(db *bun.DB, log logger.ILogger) storage.ISessionStorage {
	return &sessionRepo{db: db, log: log}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	row := &sessionModel{
		Token:     s.Token,
		DriverID:  s.DriverID,
		ExpiresAt: s.ExpiresAt.UTC(),
		CreatedAt: s.CreatedAt.UTC(),
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		r.log.Error("failed to create session", logger.Error(err))
		return mapError(err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	row := new(sessionModel)
	err := r.db.NewSelect().Model(row).Where("s.token = ?", token).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get session", logger.Error(err))
		return nil, err
	}
	return &models.Session{
		Token:     row.Token,
		DriverID:  row.DriverID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.NewDelete().Model((*sessionModel)(nil)).Where("token = ?", token).Exec(ctx)
	return err
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().Model((*sessionModel)(nil)).Where("expires_at <= ?", time.Now().UTC()).Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

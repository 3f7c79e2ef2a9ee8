package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type sessionRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSessionRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISessionStorage {
	return &sessionRepo{db: db, log: log}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	query := `INSERT INTO sessions (token, driver_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, s.Token, s.DriverID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		r.log.Error("failed to create session", logger.Error(err))
		return mapError(err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	query := `SELECT token, driver_id, expires_at, created_at FROM sessions WHERE token = $1`
	err := r.db.QueryRow(ctx, query, token).Scan(&s.Token, &s.DriverID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get session", logger.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

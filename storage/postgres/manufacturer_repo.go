package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewManufacturerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	out := *m
	query := `INSERT INTO manufacturers (name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRow(ctx, query, m.Name).Scan(&out.ID); err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	return &out, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	err := r.db.QueryRow(ctx, `SELECT id, name FROM manufacturers WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get manufacturer by id", logger.Error(err))
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) GetByName(ctx context.Context, name string) (*models.Manufacturer, error) {
	var m models.Manufacturer
	err := r.db.QueryRow(ctx, `SELECT id, name FROM manufacturers WHERE name = $1`, name).Scan(&m.ID, &m.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get manufacturer by name", logger.Error(err))
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Manufacturer, error) {
	query := `
		SELECT id, name FROM manufacturers
		WHERE LOWER(name) LIKE $1 ESCAPE '!'
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to find manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []*models.Manufacturer{}
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *manufacturerRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM manufacturers WHERE LOWER(name) LIKE $1 ESCAPE '!'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}

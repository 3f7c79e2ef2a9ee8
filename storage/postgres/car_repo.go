package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

const carColumns = `c.id, c.model, c.manufacturer_id, m.id, m.name`

func scanCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	var m models.Manufacturer
	if err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &m.ID, &m.Name); err != nil {
		return nil, err
	}
	c.Manufacturer = &m
	return &c, nil
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	out := *car
	query := `INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, car.Model, car.ManufacturerID).Scan(&out.ID); err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}
	return &out, nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c JOIN manufacturers m ON m.id = c.manufacturer_id WHERE c.id = $1`
	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get car by id", logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars c JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE LOWER(c.model) LIKE $1 ESCAPE '!'
		ORDER BY c.id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to find cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	cars := []*models.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *carRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM cars WHERE LOWER(model) LIKE $1 ESCAPE '!'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}

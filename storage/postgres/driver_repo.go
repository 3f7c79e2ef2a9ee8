package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `id, username, first_name, last_name, email, COALESCE(license_number, ''), password_hash, is_staff, created_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.Username, &d.FirstName, &d.LastName, &d.Email, &d.LicenseNumber, &d.PasswordHash, &d.IsStaff, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (username, first_name, last_name, email, license_number, password_hash, is_staff)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING ` + driverColumns
	d, err := scanDriver(r.db.QueryRow(ctx, query,
		driver.Username, driver.FirstName, driver.LastName, driver.Email, driver.LicenseNumber, driver.PasswordHash, driver.IsStaff,
	))
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
		return nil, mapError(err)
	}
	return d, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver by id", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE username = $1`, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver by username", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Driver, error) {
	query := `
		SELECT ` + driverColumns + ` FROM drivers
		WHERE LOWER(username) LIKE $1 ESCAPE '!'
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to find drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM drivers WHERE LOWER(username) LIKE $1 ESCAPE '!'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}

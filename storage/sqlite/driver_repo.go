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

type driverRepo struct {
	db  *bun.DB
	log logger.ILogger
}

func NewDriverRepo(db *bun.DB, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	row := driverFromModel(driver)
	row.ID = 0
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
		return nil, mapError(err)
	}
	return row.toModel(), nil
}

func (r *driverRepo) get(ctx context.Context, column string, value any) (*models.Driver, error) {
	row := new(driverModel)
	err := r.db.NewSelect().Model(row).Where("? = ?", bun.Ident(column), value).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get driver", logger.String("by", column), logger.Error(err))
		return nil, err
	}
	return row.toModel(), nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return r.get(ctx, "d.id", id)
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	return r.get(ctx, "d.username", username)
}

func (r *driverRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Driver, error) {
	var rows []driverModel
	q := searchWhere(r.db.NewSelect().Model(&rows), "d.username", filter.Search)
	if err := window(q.OrderExpr("d.id ASC"), filter).Scan(ctx); err != nil {
		r.log.Error("failed to find drivers", logger.Error(err))
		return nil, err
	}
	out := make([]*models.Driver, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (r *driverRepo) Count(ctx context.Context, search string) (int, error) {
	return searchWhere(r.db.NewSelect().Model((*driverModel)(nil)), "d.username", search).Count(ctx)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	db  *bun.DB
	log logger.ILogger
}

func NewManufacturerRepo(db *bun.DB, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	row := &manufacturerModel{Name: m.Name}
	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	return row.toModel(), nil
}

func (r *manufacturerRepo) get(ctx context.Context, column string, value any) (*models.Manufacturer, error) {
	row := new(manufacturerModel)
	err := r.db.NewSelect().Model(row).Where("? = ?", bun.Ident(column), value).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get manufacturer", logger.String("by", column), logger.Error(err))
		return nil, err
	}
	return row.toModel(), nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	return r.get(ctx, "m.id", id)
}

func (r *manufacturerRepo) GetByName(ctx context.Context, name string) (*models.Manufacturer, error) {
	return r.get(ctx, "m.name", name)
}

func (r *manufacturerRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Manufacturer, error) {
	var rows []manufacturerModel
	q := searchWhere(r.db.NewSelect().Model(&rows), "m.name", filter.Search)
	if err := window(q.OrderExpr("m.id ASC"), filter).Scan(ctx); err != nil {
		r.log.Error("failed to find manufacturers", logger.Error(err))
		return nil, err
	}
	out := make([]*models.Manufacturer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (r *manufacturerRepo) Count(ctx context.Context, search string) (int, error) {
	return searchWhere(r.db.NewSelect().Model((*manufacturerModel)(nil)), "m.name", search).Count(ctx)
}

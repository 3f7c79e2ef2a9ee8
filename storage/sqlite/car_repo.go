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

type carRepo struct {
	db  *bun.DB
	log logger.ILogger
}

func NewCarRepo(db *bun.DB, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	row := &carModel{Model: car.Model, ManufacturerID: car.ManufacturerID}
	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}
	out := row.toModel()
	out.Manufacturer = car.Manufacturer
	return out, nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	row := new(carModel)
	err := r.db.NewSelect().Model(row).Relation("Manufacturer").Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get car by id", logger.Error(err))
		return nil, err
	}
	return row.toModel(), nil
}

func (r *carRepo) Find(ctx context.Context, filter storage.ListFilter) ([]*models.Car, error) {
	var rows []carModel
	q := searchWhere(r.db.NewSelect().Model(&rows).Relation("Manufacturer"), "c.model", filter.Search)
	if err := window(q.OrderExpr("c.id ASC"), filter).Scan(ctx); err != nil {
		r.log.Error("failed to find cars", logger.Error(err))
		return nil, err
	}
	out := make([]*models.Car, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

func (r *carRepo) Count(ctx context.Context, search string) (int, error) {
	return searchWhere(r.db.NewSelect().Model((*carModel)(nil)), "c.model", search).Count(ctx)
}

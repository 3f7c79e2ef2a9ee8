package service

import (
	"context"

	"taxiservice/pkg/models"
	"taxiservice/storage"
)

// PageSize is the fixed number of records on every list page.
const PageSize = 5

type lister[T any] interface {
	Find(ctx context.Context, filter storage.ListFilter) ([]T, error)
	Count(ctx context.Context, search string) (int, error)
}

// listPage returns page number page of the records matching search. Pages
// past the end come back empty rather than as an error.
func listPage[T any](ctx context.Context, stg lister[T], search string, page int) (*models.Page[T], error) {
	if page < 1 {
		page = 1
	}

	total, err := stg.Count(ctx, search)
	if err != nil {
		return nil, err
	}

	p := &models.Page[T]{Items: []T{}, Number: page, Size: PageSize, Total: total}
	if p.Offset() >= total {
		return p, nil
	}

	items, err := stg.Find(ctx, storage.ListFilter{Search: search, Limit: PageSize, Offset: p.Offset()})
	if err != nil {
		return nil, err
	}
	p.Items = items
	return p, nil
}

// Messages shown in place of an empty list.
const (
	NoManufacturersMessage = "There are no manufacturers in the service."
	NoCarsMessage          = "There are no cars in taxi"
	NoDriversMessage       = "There are no drivers in the service."
)

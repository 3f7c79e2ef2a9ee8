package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/models"
	"taxiservice/service"
)

type listQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

type listRow struct {
	URL   string
	Cells []string
}

type listView struct {
	pageView
	Path         string
	Param        string
	Query        string
	Columns      []string
	Rows         []listRow
	Number       int
	NumPages     int
	Total        int
	PrevURL      string
	NextURL      string
	EmptyMessage string
}

type listResponse[T any] struct {
	Items    []T    `json:"items"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
	NumPages int    `json:"num_pages"`
	Query    string `json:"query"`
	Message  string `json:"message,omitempty"`
}

// listKind describes one filtered list page: which query parameter filters
// it, how to fetch a page and how to show a record.
type listKind[T any] struct {
	title    string
	template string
	path     string
	param    string
	empty    string
	columns  []string
	fetch    func(ctx context.Context, query string, page int) (*models.Page[T], error)
	row      func(T) listRow
}

func serveList[T any](h *Handler, kind listKind[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			h.renderError(c, http.StatusBadRequest, "Invalid page number.")
			return
		}
		query := c.Query(kind.param)

		page, err := kind.fetch(c.Request.Context(), query, q.Page)
		if err != nil {
			h.serverError(c, "failed to list "+kind.path, err)
			return
		}

		view := listView{
			pageView: pageView{Title: kind.title, User: currentDriver(c)},
			Path:     kind.path,
			Param:    kind.param,
			Query:    query,
			Columns:  kind.columns,
			Rows:     make([]listRow, 0, len(page.Items)),
			Number:   page.Number,
			NumPages: page.NumPages(),
			Total:    page.Total,
		}
		for _, item := range page.Items {
			view.Rows = append(view.Rows, kind.row(item))
		}
		if page.HasPrevious() {
			view.PrevURL = pageURL(kind.path, kind.param, query, page.Number-1)
		}
		if page.HasNext() {
			view.NextURL = pageURL(kind.path, kind.param, query, page.Number+1)
		}

		resp := listResponse[T]{
			Items:    page.Items,
			Page:     page.Number,
			PageSize: page.Size,
			Total:    page.Total,
			NumPages: page.NumPages(),
			Query:    query,
		}
		if page.Total == 0 {
			view.EmptyMessage = kind.empty
			resp.Message = kind.empty
		}

		h.render(c, http.StatusOK, kind.template, view, resp)
	}
}

func pageURL(path, param, query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set(param, query)
	}
	v.Set("page", strconv.Itoa(page))
	return path + "?" + v.Encode()
}

const (
	noManufacturersMessage = service.NoManufacturersMessage
	noCarsMessage          = service.NoCarsMessage
	noDriversMessage       = service.NoDriversMessage
)

func (h *Handler) manufacturerList(c *gin.Context) {
	serveList(h, listKind[*models.Manufacturer]{
		title:    "Manufacturer list",
		template: "list.html",
		path:     "/manufacturers/",
		param:    "name",
		empty:    noManufacturersMessage,
		columns:  []string{"ID", "Name"},
		fetch:    h.svc.Manufacturer().List,
		row: func(m *models.Manufacturer) listRow {
			return listRow{Cells: []string{strconv.FormatInt(m.ID, 10), m.Name}}
		},
	})(c)
}

func (h *Handler) carList(c *gin.Context) {
	serveList(h, listKind[*models.Car]{
		title:    "Car list",
		template: "list.html",
		path:     "/cars/",
		param:    "model",
		empty:    noCarsMessage,
		columns:  []string{"ID", "Model", "Manufacturer"},
		fetch:    h.svc.Car().List,
		row: func(car *models.Car) listRow {
			manufacturer := ""
			if car.Manufacturer != nil {
				manufacturer = car.Manufacturer.Name
			}
			return listRow{
				URL:   "/cars/" + strconv.FormatInt(car.ID, 10) + "/",
				Cells: []string{strconv.FormatInt(car.ID, 10), car.Model, manufacturer},
			}
		},
	})(c)
}

func (h *Handler) driverList(c *gin.Context) {
	serveList(h, listKind[*models.Driver]{
		title:    "Driver list",
		template: "list.html",
		path:     "/drivers/",
		param:    "username",
		empty:    noDriversMessage,
		columns:  []string{"ID", "Username", "Full name", "License number"},
		fetch:    h.svc.Driver().List,
		row: func(d *models.Driver) listRow {
			return listRow{
				URL:   "/drivers/" + strconv.FormatInt(d.ID, 10) + "/",
				Cells: []string{strconv.FormatInt(d.ID, 10), d.Username, d.FullName(), d.LicenseNumber},
			}
		},
	})(c)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/models"
)

type carView struct {
	pageView
	Car *models.Car
}

type driverView struct {
	pageView
	Driver *models.Driver
}

type indexView struct {
	pageView
	NumManufacturers int
	NumCars          int
	NumDrivers       int
}

func (h *Handler) index(c *gin.Context) {
	ctx := c.Request.Context()
	view := indexView{pageView: pageView{Title: "Home", User: currentDriver(c)}}

	manufacturers, err := h.svc.Manufacturer().List(ctx, "", 1)
	if err != nil {
		h.serverError(c, "failed to count manufacturers", err)
		return
	}
	cars, err := h.svc.Car().List(ctx, "", 1)
	if err != nil {
		h.serverError(c, "failed to count cars", err)
		return
	}
	drivers, err := h.svc.Driver().List(ctx, "", 1)
	if err != nil {
		h.serverError(c, "failed to count drivers", err)
		return
	}
	view.NumManufacturers = manufacturers.Total
	view.NumCars = cars.Total
	view.NumDrivers = drivers.Total

	h.render(c, http.StatusOK, "index.html", view, gin.H{
		"num_manufacturers": view.NumManufacturers,
		"num_cars":          view.NumCars,
		"num_drivers":       view.NumDrivers,
	})
}

func (h *Handler) carDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.notFound(c)
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "failed to get car", err)
		return
	}
	if car == nil {
		h.notFound(c)
		return
	}
	view := carView{pageView: pageView{Title: car.Model, User: currentDriver(c)}, Car: car}
	h.render(c, http.StatusOK, "car_detail.html", view, car)
}

func (h *Handler) driverDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.notFound(c)
		return
	}
	driver, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "failed to get driver", err)
		return
	}
	if driver == nil {
		h.notFound(c)
		return
	}
	view := driverView{pageView: pageView{Title: driver.Username, User: currentDriver(c)}, Driver: driver}
	h.render(c, http.StatusOK, "driver_detail.html", view, driver)
}

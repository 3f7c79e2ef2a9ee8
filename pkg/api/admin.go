package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxiservice/pkg/models"
	"taxiservice/service"
)

type driverForm struct {
	Username      string `form:"username"`
	Password1     string `form:"password1"`
	Password2     string `form:"password2"`
	FirstName     string `form:"first_name"`
	LastName      string `form:"last_name"`
	Email         string `form:"email"`
	LicenseNumber string `form:"license_number"`
	IsStaff       bool   `form:"is_staff"`
}

type driverFormView struct {
	pageView
	Form   driverForm
	Errors map[string]string
}

// fieldErrors maps service validation errors onto the form fields they
// belong to.
var fieldErrors = []struct {
	err   error
	field string
	msg   string
}{
	{service.ErrUsernameRequired, "username", "This field is required."},
	{service.ErrUsernameTaken, "username", "A driver with that username already exists."},
	{service.ErrPasswordRequired, "password1", "This field is required."},
	{service.ErrPasswordMismatch, "password2", "The two password fields didn't match."},
	{service.ErrLicenseRequired, "license_number", "This field is required."},
	{service.ErrInvalidLicenseNumber, "license_number", "License number must consist of 3 uppercase letters followed by 5 digits."},
	{service.ErrLicenseTaken, "license_number", "A driver with that license number already exists."},
}

func (h *Handler) adminDriverList(c *gin.Context) {
	serveList(h, listKind[*models.Driver]{
		title:    "Select driver to change",
		template: "admin_driver_list.html",
		path:     "/admin/drivers/",
		param:    "q",
		empty:    noDriversMessage,
		columns:  []string{"Username", "Email", "First name", "Last name", "License number", "Staff status"},
		fetch:    h.svc.Driver().List,
		row: func(d *models.Driver) listRow {
			return listRow{
				URL:   "/admin/drivers/" + strconv.FormatInt(d.ID, 10) + "/change/",
				Cells: []string{d.Username, d.Email, d.FirstName, d.LastName, d.LicenseNumber, strconv.FormatBool(d.IsStaff)},
			}
		},
	})(c)
}

func (h *Handler) adminDriverChange(c *gin.Context) {
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
	view := driverView{pageView: pageView{Title: "Change driver", User: currentDriver(c)}, Driver: driver}
	h.render(c, http.StatusOK, "admin_driver_change.html", view, driver)
}

func (h *Handler) adminDriverAddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_driver_add.html", driverFormView{
		pageView: pageView{Title: "Add driver", User: currentDriver(c)},
	})
}

func (h *Handler) adminDriverAdd(c *gin.Context) {
	var form driverForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	view := driverFormView{
		pageView: pageView{Title: "Add driver", User: currentDriver(c)},
		Form:     form,
		Errors:   map[string]string{},
	}
	view.Form.Password1, view.Form.Password2 = "", ""

	driver, err := h.svc.Driver().Create(c.Request.Context(), service.CreateDriverInput{
		Username:        form.Username,
		Password:        form.Password1,
		PasswordConfirm: form.Password2,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		LicenseNumber:   form.LicenseNumber,
		IsStaff:         form.IsStaff,
		RequireLicense:  true,
	})
	if err != nil {
		for _, fe := range fieldErrors {
			if errors.Is(err, fe.err) {
				view.Errors[fe.field] = fe.msg
			}
		}
		if len(view.Errors) == 0 {
			h.serverError(c, "failed to create driver", err)
			return
		}
		c.HTML(http.StatusBadRequest, "admin_driver_add.html", view)
		return
	}

	c.Redirect(http.StatusFound, "/admin/drivers/"+strconv.FormatInt(driver.ID, 10)+"/change/")
}

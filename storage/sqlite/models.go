package sqlite

import (
	"time"

	"github.com/uptrace/bun"

	"taxiservice/pkg/models"
)

type manufacturerModel struct {
	bun.BaseModel `bun:"table:manufacturers,alias:m"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
}

func (m *manufacturerModel) toModel() *models.Manufacturer {
	return &models.Manufacturer{ID: m.ID, Name: m.Name}
}

type carModel struct {
	bun.BaseModel  `bun:"table:cars,alias:c"`
	ID             int64              `bun:"id,pk,autoincrement"`
	Model          string             `bun:"model"`
	ManufacturerID int64              `bun:"manufacturer_id"`
	Manufacturer   *manufacturerModel `bun:"rel:belongs-to,join:manufacturer_id=id"`
}

func (c *carModel) toModel() *models.Car {
	out := &models.Car{ID: c.ID, Model: c.Model, ManufacturerID: c.ManufacturerID}
	if c.Manufacturer != nil {
		out.Manufacturer = c.Manufacturer.toModel()
	}
	return out
}

type driverModel struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username"`
	FirstName     string    `bun:"first_name"`
	LastName      string    `bun:"last_name"`
	Email         string    `bun:"email"`
	LicenseNumber string    `bun:"license_number,nullzero"`
	PasswordHash  string    `bun:"password_hash"`
	IsStaff       bool      `bun:"is_staff"`
	CreatedAt     time.Time `bun:"created_at"`
}

func driverFromModel(d *models.Driver) *driverModel {
	return &driverModel{
		ID:            d.ID,
		Username:      d.Username,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		PasswordHash:  d.PasswordHash,
		IsStaff:       d.IsStaff,
		CreatedAt:     d.CreatedAt,
	}
}

func (d *driverModel) toModel() *models.Driver {
	return &models.Driver{
		ID:            d.ID,
		Username:      d.Username,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		LicenseNumber: d.LicenseNumber,
		PasswordHash:  d.PasswordHash,
		IsStaff:       d.IsStaff,
		CreatedAt:     d.CreatedAt,
	}
}

type sessionModel struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`
	Token         string    `bun:"token,pk"`
	DriverID      int64     `bun:"driver_id"`
	ExpiresAt     time.Time `bun:"expires_at"`
	CreatedAt     time.Time `bun:"created_at"`
}

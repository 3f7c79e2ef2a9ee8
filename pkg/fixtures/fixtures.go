// Package fixtures loads seed data from YAML files.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"taxiservice/pkg/logger"
	"taxiservice/service"
)

// Fixture is the document layout, e.g.
//
//	manufacturers: [Toyota, Skoda]
//	cars:
//	  - {model: Camry, manufacturer: Toyota}
//	drivers:
//	  - {username: john_doe, password: secret, license_number: JDO12345}
type Fixture struct {
	Manufacturers []string        `yaml:"manufacturers"`
	Cars          []CarFixture    `yaml:"cars"`
	Drivers       []DriverFixture `yaml:"drivers"`
}

type CarFixture struct {
	Model        string `yaml:"model"`
	Manufacturer string `yaml:"manufacturer"`
}

type DriverFixture struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	FirstName     string `yaml:"first_name"`
	LastName      string `yaml:"last_name"`
	Email         string `yaml:"email"`
	LicenseNumber string `yaml:"license_number"`
	IsStaff       bool   `yaml:"is_staff"`
}

type Result struct {
	Manufacturers int
	Cars          int
	Drivers       int
}

func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func ParseFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Load inserts f through the services. Manufacturers that already exist are
// reused so cars can reference them by name.
func Load(ctx context.Context, svc service.IServiceManager, f *Fixture, log logger.ILogger) (Result, error) {
	var res Result
	ids := make(map[string]int64, len(f.Manufacturers))

	for _, name := range f.Manufacturers {
		m, err := svc.Manufacturer().GetByName(ctx, name)
		if err != nil {
			return res, err
		}
		if m == nil {
			if m, err = svc.Manufacturer().Create(ctx, name); err != nil {
				return res, fmt.Errorf("manufacturer %q: %w", name, err)
			}
			res.Manufacturers++
		}
		ids[m.Name] = m.ID
	}

	for _, car := range f.Cars {
		id, ok := ids[car.Manufacturer]
		if !ok {
			m, err := svc.Manufacturer().GetByName(ctx, car.Manufacturer)
			if err != nil {
				return res, err
			}
			if m == nil {
				return res, fmt.Errorf("car %q: %w: %q", car.Model, service.ErrManufacturerNotFound, car.Manufacturer)
			}
			id = m.ID
			ids[m.Name] = id
		}
		if _, err := svc.Car().Create(ctx, car.Model, id); err != nil {
			return res, fmt.Errorf("car %q: %w", car.Model, err)
		}
		res.Cars++
	}

	for _, d := range f.Drivers {
		_, err := svc.Driver().Create(ctx, service.CreateDriverInput{
			Username:        d.Username,
			Password:        d.Password,
			PasswordConfirm: d.Password,
			FirstName:       d.FirstName,
			LastName:        d.LastName,
			Email:           d.Email,
			LicenseNumber:   d.LicenseNumber,
			IsStaff:         d.IsStaff,
		})
		if err != nil {
			return res, fmt.Errorf("driver %q: %w", d.Username, err)
		}
		res.Drivers++
	}

	log.Info("fixture loaded",
		logger.Int("manufacturers", res.Manufacturers),
		logger.Int("cars", res.Cars),
		logger.Int("drivers", res.Drivers),
	)
	return res, nil
}

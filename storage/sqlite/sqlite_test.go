package sqlite

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

func newTestStore(t *testing.T) storage.IStorage {
	t.Helper()
	stg, err := New(context.Background(), ":memory:", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(stg.Close)
	return stg
}

func createManufacturers(t *testing.T, stg storage.IStorage, names ...string) []*models.Manufacturer {
	t.Helper()
	out := make([]*models.Manufacturer, 0, len(names))
	for _, name := range names {
		m, err := stg.Manufacturer().Create(context.Background(), &models.Manufacturer{Name: name})
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func TestMigrationsAreIdempotent(t *testing.T) {
	stg := newTestStore(t)
	s := stg.(*Store)
	require.NoError(t, runMigrations(context.Background(), s.db, logger.NewNop()))
}

func TestManufacturerFindSubstringCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	createManufacturers(t, stg, "Volkswagen", "Skoda", "BMW")

	found, err := stg.Manufacturer().Find(ctx, storage.ListFilter{Search: "Volk"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Volkswagen", found[0].Name)

	found, err = stg.Manufacturer().Find(ctx, storage.ListFilter{Search: "volk"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := stg.Manufacturer().Find(ctx, storage.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Volkswagen", "Skoda", "BMW"}, []string{all[0].Name, all[1].Name, all[2].Name})

	none, err := stg.Manufacturer().Find(ctx, storage.ListFilter{Search: "Ford"})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	count, err := stg.Manufacturer().Count(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	createManufacturers(t, stg, "Škoda", "Citroën", "BMW")

	tests := []struct {
		search string
		want   []string
	}{
		{"Škoda", []string{"Škoda"}},
		{"Š", []string{"Škoda"}},
		{"škoda", []string{"Škoda"}},
		{"ë", []string{"Citroën"}},
		{"CITROËN", []string{"Citroën"}},
		{"bmw", []string{"BMW"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			count, err := stg.Manufacturer().Count(ctx, tt.search)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), count)

			found, err := stg.Manufacturer().Find(ctx, storage.ListFilter{Search: tt.search})
			require.NoError(t, err)
			names := []string{}
			for _, m := range found {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUnicodeLower(t *testing.T) {
	v, err := unicodeLower(nil, []driver.Value{"ŠKODA"})
	require.NoError(t, err)
	assert.Equal(t, "škoda", v)

	v, err = unicodeLower(nil, []driver.Value{[]byte("CITROËN")})
	require.NoError(t, err)
	assert.Equal(t, "citroën", v)

	v, err = unicodeLower(nil, []driver.Value{nil})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestManufacturerUniqueName(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	createManufacturers(t, stg, "BMW")

	_, err := stg.Manufacturer().Create(ctx, &models.Manufacturer{Name: "BMW"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestManufacturerGet(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	ms := createManufacturers(t, stg, "Toyota")

	byID, err := stg.Manufacturer().GetByID(ctx, ms[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", byID.Name)

	byName, err := stg.Manufacturer().GetByName(ctx, "Toyota")
	require.NoError(t, err)
	assert.Equal(t, ms[0].ID, byName.ID)

	missing, err := stg.Manufacturer().GetByName(ctx, "Lada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCarWindowAndRelation(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	ms := createManufacturers(t, stg, "Toyota")
	_, err := stg.Car().Create(ctx, &models.Car{Model: "Camry", ManufacturerID: ms[0].ID})
	require.NoError(t, err)
	for i := 0; i < 13; i++ {
		_, err := stg.Car().Create(ctx, &models.Car{Model: fmt.Sprintf("Model%d", i), ManufacturerID: ms[0].ID})
		require.NoError(t, err)
	}

	page, err := stg.Car().Find(ctx, storage.ListFilter{Search: "model", Limit: 5, Offset: 10})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "Model10", page[0].Model)
	assert.Equal(t, "Model12", page[2].Model)
	require.NotNil(t, page[0].Manufacturer)
	assert.Equal(t, "Toyota", page[0].Manufacturer.Name)

	beyond, err := stg.Car().Find(ctx, storage.ListFilter{Search: "model", Limit: 5, Offset: 15})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	count, err := stg.Car().Count(ctx, "Model")
	require.NoError(t, err)
	assert.Equal(t, 13, count)

	car, err := stg.Car().GetByID(ctx, page[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", car.Manufacturer.Name)

	missing, err := stg.Car().GetByID(ctx, 4242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCarRequiresManufacturer(t *testing.T) {
	stg := newTestStore(t)
	_, err := stg.Car().Create(context.Background(), &models.Car{Model: "Ghost", ManufacturerID: 99})
	assert.Error(t, err)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	for _, username := range []string{"john_doe", "johnXdoe", "100%driver"} {
		_, err := stg.Driver().Create(ctx, &models.Driver{Username: username})
		require.NoError(t, err)
	}

	found, err := stg.Driver().Find(ctx, storage.ListFilter{Search: "n_d"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "john_doe", found[0].Username)

	found, err = stg.Driver().Find(ctx, storage.ListFilter{Search: "0%d"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100%driver", found[0].Username)
}

func TestDriverLicenseUniqueness(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)

	d, err := stg.Driver().Create(ctx, &models.Driver{Username: "driver", LicenseNumber: "TST56789", IsStaff: true})
	require.NoError(t, err)
	assert.NotZero(t, d.ID)
	assert.False(t, d.CreatedAt.IsZero())

	_, err = stg.Driver().Create(ctx, &models.Driver{Username: "copycat", LicenseNumber: "TST56789"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = stg.Driver().Create(ctx, &models.Driver{Username: "admin"})
	require.NoError(t, err)
	_, err = stg.Driver().Create(ctx, &models.Driver{Username: "test"})
	require.NoError(t, err, "unset license numbers must not collide")

	got, err := stg.Driver().GetByUsername(ctx, "driver")
	require.NoError(t, err)
	assert.Equal(t, "TST56789", got.LicenseNumber)
	assert.True(t, got.IsStaff)

	admin, err := stg.Driver().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "", admin.LicenseNumber)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	d, err := stg.Driver().Create(ctx, &models.Driver{Username: "test"})
	require.NoError(t, err)

	now := time.Now()
	live := &models.Session{Token: "live", DriverID: d.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	stale := &models.Session{Token: "stale", DriverID: d.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour)}
	require.NoError(t, stg.Session().Create(ctx, live))
	require.NoError(t, stg.Session().Create(ctx, stale))

	got, err := stg.Session().Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.ID, got.DriverID)
	assert.WithinDuration(t, live.ExpiresAt, got.ExpiresAt, time.Second)

	removed, err := stg.Session().DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, stg.Session().Delete(ctx, "live"))
	got, err = stg.Session().Get(ctx, "live")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	stg := newTestStore(t)
	createManufacturers(t, stg, "Skoda")

	require.NoError(t, stg.Reset(ctx))

	count, err := stg.Manufacturer().Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)

	ms := createManufacturers(t, stg, "Skoda")
	assert.Equal(t, int64(1), ms[0].ID)
}

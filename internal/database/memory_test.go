package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ppf-order-backend/internal/database"
	"ppf-order-backend/internal/models"
)

func sampleOrder() models.NewOrder {
	return models.NewOrder{
		Package:    models.PackageGold,
		Vehicle:    models.Vehicle{Year: "2022", Make: "Toyota", Model: "Camry"},
		Customer:   models.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "5551234567"},
		JobRequest: "matte finish",
	}
}

func TestMemoryRepository_CreateForcesPending(t *testing.T) {
	repo := database.NewMemoryRepository()

	order, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Empty(t, order.PhotoURL)
}

func TestMemoryRepository_CreateValidation(t *testing.T) {
	cases := map[string]func(*models.NewOrder){
		"package":       func(n *models.NewOrder) { n.Package = "" },
		"vehicle make":  func(n *models.NewOrder) { n.Vehicle.Make = "" },
		"vehicle model": func(n *models.NewOrder) { n.Vehicle.Model = "" },
		"customer name": func(n *models.NewOrder) { n.Customer.Name = "" },
		"unknown tier":  func(n *models.NewOrder) { n.Package = "Titanium" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := database.NewMemoryRepository()
			input := sampleOrder()
			mutate(&input)

			_, err := repo.Create(input)
			assert.ErrorAs(t, err, new(*models.ValidationError))

			orders, err := repo.List()
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	repo := database.NewMemoryRepository()

	first, err := repo.Create(sampleOrder())
	require.NoError(t, err)
	second, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	orders, err := repo.List()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestMemoryRepository_GetNotFound(t *testing.T) {
	repo := database.NewMemoryRepository()

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryRepository_PartialUpdate(t *testing.T) {
	repo := database.NewMemoryRepository()
	created, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, models.OrderPatch{
		Vehicle: models.VehiclePatch{Trim: models.Some("XSE")},
	})
	require.NoError(t, err)

	expected := *created
	expected.Vehicle.Trim = "XSE"
	assert.Equal(t, expected, *updated)

	stored, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, expected, *stored)
}

func TestMemoryRepository_StatusTransitionsAreUnrestricted(t *testing.T) {
	repo := database.NewMemoryRepository()
	created, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	for _, status := range []models.Status{models.StatusCompleted, models.StatusCancelled, models.StatusPending} {
		updated, err := repo.Update(created.ID, models.OrderPatch{Status: models.Some(status)})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestMemoryRepository_UpdateRejectsClearingRequired(t *testing.T) {
	repo := database.NewMemoryRepository()
	created, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	_, err = repo.Update(created.ID, models.OrderPatch{Customer: models.CustomerPatch{Name: models.Some("")}})
	assert.ErrorAs(t, err, new(*models.ValidationError))

	stored, err := repo.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *stored)
}

func TestMemoryRepository_UpdateNotFound(t *testing.T) {
	repo := database.NewMemoryRepository()
	_, err := repo.Create(sampleOrder())
	require.NoError(t, err)
	before, err := repo.List()
	require.NoError(t, err)

	_, err = repo.Update("missing", models.OrderPatch{Status: models.Some(models.StatusCompleted)})
	assert.ErrorIs(t, err, models.ErrNotFound)

	after, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryRepository_UpdateMissingIgnoresInvalidPatch(t *testing.T) {
	repo := database.NewMemoryRepository()

	patches := []models.OrderPatch{
		{Status: models.Some(models.Status("shipped"))},
		{Package: models.Some(models.PackageLevel("Titanium"))},
		{Customer: models.CustomerPatch{Name: models.Some("")}},
	}
	for _, patch := range patches {
		_, err := repo.Update("missing", patch)
		assert.ErrorIs(t, err, models.ErrNotFound)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := database.NewMemoryRepository()
	created, err := repo.Create(sampleOrder())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))
	assert.ErrorIs(t, repo.Delete(created.ID), models.ErrNotFound)

	_, err = repo.Get(created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

package database

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ppf-order-backend/internal/models"
)

// fillStrings sets every string leaf reachable from v to a distinct value.
func fillStrings(t *testing.T, v reflect.Value, prefix string) {
	t.Helper()
	switch v.Kind() {
	case reflect.String:
		v.SetString(prefix)
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return
		}
		for i := 0; i < v.NumField(); i++ {
			fillStrings(t, v.Field(i), fmt.Sprintf("%s.%s", prefix, v.Type().Field(i).Name))
		}
	}
}

func fullOrder(t *testing.T) models.Order {
	var o models.Order
	fillStrings(t, reflect.ValueOf(&o).Elem(), "o")
	o.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return o
}

func TestToRow_FillsEveryColumn(t *testing.T) {
	row := ToRow(fullOrder(t))

	v := reflect.ValueOf(row)
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		field := v.Field(i)
		if ns, ok := field.Interface().(sql.NullString); ok {
			assert.True(t, ns.Valid, "column %s should be set", name)
			assert.NotEmpty(t, ns.String, "column %s should be set", name)
			continue
		}
		assert.False(t, field.IsZero(), "column %s should be set", name)
	}
}

func TestRoundTrip_NestedFlatNested(t *testing.T) {
	order := fullOrder(t)
	assert.Equal(t, order, ToRow(order).ToOrder())
}

func TestRoundTrip_FlattenIsIdempotent(t *testing.T) {
	orders := []models.Order{
		fullOrder(t),
		{
			ID:       "b1c9a7a4-3f55-4a39-8d2f-2b1f3c0d9e11",
			Package:  models.PackageGold,
			Vehicle:  models.Vehicle{Year: "2022", Make: "Toyota", Model: "Camry"},
			Customer: models.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "5551234567"},
			Status:   models.StatusPending,
		},
		{ID: "x", Package: models.PackageCustom, Vehicle: models.Vehicle{Make: "Kia", Model: "EV6"}, Customer: models.Customer{Name: "Sam"}, Status: models.StatusCancelled},
	}

	for _, o := range orders {
		flat := ToRow(o)
		assert.Equal(t, flat, ToRow(flat.ToOrder()))
	}
}

func TestToRow_EmptyOptionalsAreNull(t *testing.T) {
	row := ToRow(models.Order{Package: models.PackageBronze, Vehicle: models.Vehicle{Make: "Honda", Model: "Civic"}, Customer: models.Customer{Name: "Ann"}})

	assert.False(t, row.VehicleYear.Valid)
	assert.False(t, row.VehicleTrim.Valid)
	assert.False(t, row.CustomerEmail.Valid)
	assert.False(t, row.CustomerPhone.Valid)
	assert.False(t, row.JobRequest.Valid)
	assert.False(t, row.PhotoURL.Valid)

	order := row.ToOrder()
	assert.Empty(t, order.PhotoURL)
	assert.Empty(t, order.JobRequest)
}

func TestPatchColumns_EmptyPatch(t *testing.T) {
	assert.Empty(t, PatchColumns(models.OrderPatch{}))
}

func TestPatchColumns_FullPatchCoversEveryMutableColumn(t *testing.T) {
	patch := models.OrderPatch{
		Package:    models.Some(models.PackageDiamond),
		Status:     models.Some(models.StatusCompleted),
		JobRequest: models.Some("full wrap"),
		PhotoURL:   models.Some("https://cdn.test/p.jpg"),
		Vehicle: models.VehiclePatch{
			Year:  models.Some("2020"),
			Make:  models.Some("BMW"),
			Model: models.Some("M3"),
			Trim:  models.Some("Competition"),
		},
		Customer: models.CustomerPatch{
			Name:  models.Some("Lee"),
			Email: models.Some("lee@example.com"),
			Phone: models.Some("5550001111"),
		},
	}

	columns := map[string]bool{}
	for _, a := range PatchColumns(patch) {
		columns[a.Column] = true
	}

	// Every column except the immutable id and created_at.
	assert.Len(t, columns, reflect.TypeOf(OrderRow{}).NumField()-2)
	assert.False(t, columns[colID])
	assert.False(t, columns[colCreatedAt])
}

func TestPatchColumns_AppliedToRowLeavesOthersUntouched(t *testing.T) {
	original := fullOrder(t)
	row := ToRow(original)

	patch := models.OrderPatch{
		Status:   models.Some(models.StatusCompleted),
		Customer: models.CustomerPatch{Phone: models.Some("")},
	}
	for _, a := range PatchColumns(patch) {
		require.NoError(t, row.assign(a))
	}

	updated := row.ToOrder()
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Empty(t, updated.Customer.Phone)

	updated.Status = original.Status
	updated.Customer.Phone = original.Customer.Phone
	assert.Equal(t, original, updated)
}

func TestAssign_RejectsImmutableColumn(t *testing.T) {
	var row OrderRow
	assert.Error(t, row.assign(Assignment{Column: colID, Value: "abc"}))
	assert.Error(t, row.assign(Assignment{Column: colStatus, Value: 3}))
}

// snakeCase turns a Go field name into its column name, e.g. PhotoURL -> photo_url.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func TestColumns_FollowRowFieldOrder(t *testing.T) {
	var row OrderRow
	cols := row.columns()

	v := reflect.ValueOf(&row).Elem()
	require.Len(t, cols, v.NumField())
	for i, c := range cols {
		field := v.Type().Field(i)
		assert.Equal(t, snakeCase(field.Name), c.name, "column %d", i)
		assert.True(t, v.Field(i).Addr().Interface() == c.field, "column %s is not read into %s", c.name, field.Name)
	}
}

func TestColumns_SelectListMatchesScanTargets(t *testing.T) {
	var row OrderRow
	names := strings.Split(orderColumns, ", ")
	targets := row.scanTargets()

	require.Len(t, targets, len(names))
	for i, c := range row.columns() {
		assert.Equal(t, c.name, names[i])
		assert.True(t, targets[i] == c.field, "scan target %d is not %s", i, c.name)
	}
}

func TestColumns_ExistInMigration(t *testing.T) {
	migration, err := migrationsFS.ReadFile("migrations/001_create_orders.sql")
	require.NoError(t, err)

	for _, c := range new(OrderRow).columns() {
		assert.Contains(t, string(migration), "\n    "+c.name+" ", "column %s missing from orders table", c.name)
	}
}

func TestInsertColumns_PairNamesWithValues(t *testing.T) {
	row := ToRow(fullOrder(t))
	names, values := row.insertColumns()

	require.Len(t, values, len(names))
	assert.NotContains(t, names, colCreatedAt)
	assert.Len(t, names, len(row.columns())-1)

	byName := map[string]any{}
	for i, n := range names {
		byName[n] = values[i]
	}
	assert.True(t, byName[colCustomerEmail] == any(&row.CustomerEmail))
	assert.True(t, byName[colVehicleMake] == any(&row.VehicleMake))
	assert.True(t, byName[colStatus] == any(&row.Status))
}

func TestAssign_UnknownColumn(t *testing.T) {
	var row OrderRow
	assert.Error(t, row.assign(Assignment{Column: "colour", Value: "red"}))
	assert.Error(t, row.assign(Assignment{Column: colCreatedAt, Value: time.Now()}))
}

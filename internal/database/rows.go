package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ppf-order-backend/internal/models"
)

// OrderRow is the flat layout of the orders table, one field per column.
type OrderRow struct {
	ID            string
	CreatedAt     time.Time
	Package       string
	VehicleYear   sql.NullString
	VehicleMake   string
	VehicleModel  string
	VehicleTrim   sql.NullString
	CustomerName  string
	CustomerEmail sql.NullString
	CustomerPhone sql.NullString
	JobRequest    sql.NullString
	PhotoURL      sql.NullString
	Status        string
}

const (
	colID            = "id"
	colCreatedAt     = "created_at"
	colPackage       = "package"
	colVehicleYear   = "vehicle_year"
	colVehicleMake   = "vehicle_make"
	colVehicleModel  = "vehicle_model"
	colVehicleTrim   = "vehicle_trim"
	colCustomerName  = "customer_name"
	colCustomerEmail = "customer_email"
	colCustomerPhone = "customer_phone"
	colJobRequest    = "job_request"
	colPhotoURL      = "photo_url"
	colStatus        = "status"
)

// column pairs a column name with the row field it is read into.
type column struct {
	name  string
	field any
}

// columns is the table's column order. The select list, scan targets,
// insert list and in-memory assignment all derive from it.
func (r *OrderRow) columns() []column {
	return []column{
		{colID, &r.ID},
		{colCreatedAt, &r.CreatedAt},
		{colPackage, &r.Package},
		{colVehicleYear, &r.VehicleYear},
		{colVehicleMake, &r.VehicleMake},
		{colVehicleModel, &r.VehicleModel},
		{colVehicleTrim, &r.VehicleTrim},
		{colCustomerName, &r.CustomerName},
		{colCustomerEmail, &r.CustomerEmail},
		{colCustomerPhone, &r.CustomerPhone},
		{colJobRequest, &r.JobRequest},
		{colPhotoURL, &r.PhotoURL},
		{colStatus, &r.Status},
	}
}

// orderColumns is the select list matching scanTargets.
var orderColumns = strings.Join(columnNames(new(OrderRow).columns()), ", ")

func columnNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

func (r *OrderRow) scanTargets() []any {
	cols := r.columns()
	targets := make([]any, len(cols))
	for i, c := range cols {
		targets[i] = c.field
	}
	return targets
}

// insertColumns lists every column but created_at, which the table
// defaults, together with the row's values for them.
func (r *OrderRow) insertColumns() ([]string, []any) {
	var (
		names  []string
		values []any
	)
	for _, c := range r.columns() {
		if c.name == colCreatedAt {
			continue
		}
		names = append(names, c.name)
		values = append(values, c.field)
	}
	return names, values
}

// ToRow flattens a nested order. Empty optional leaves become NULL.
func ToRow(o models.Order) OrderRow {
	return OrderRow{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt,
		Package:       string(o.Package),
		VehicleYear:   nullString(o.Vehicle.Year),
		VehicleMake:   o.Vehicle.Make,
		VehicleModel:  o.Vehicle.Model,
		VehicleTrim:   nullString(o.Vehicle.Trim),
		CustomerName:  o.Customer.Name,
		CustomerEmail: nullString(o.Customer.Email),
		CustomerPhone: nullString(o.Customer.Phone),
		JobRequest:    nullString(o.JobRequest),
		PhotoURL:      nullString(o.PhotoURL),
		Status:        string(o.Status),
	}
}

// ToOrder nests a flat row. NULL leaves become empty strings.
func (r OrderRow) ToOrder() models.Order {
	return models.Order{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Package:   models.PackageLevel(r.Package),
		Vehicle: models.Vehicle{
			Year:  r.VehicleYear.String,
			Make:  r.VehicleMake,
			Model: r.VehicleModel,
			Trim:  r.VehicleTrim.String,
		},
		Customer: models.Customer{
			Name:  r.CustomerName,
			Email: r.CustomerEmail.String,
			Phone: r.CustomerPhone.String,
		},
		JobRequest: r.JobRequest.String,
		PhotoURL:   r.PhotoURL.String,
		Status:     models.Status(r.Status),
	}
}

// Assignment is one "column = value" pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// PatchColumns lists the flat assignments for every field present in p,
// in column order. Absent fields produce nothing and are left untouched.
func PatchColumns(p models.OrderPatch) []Assignment {
	var out []Assignment
	if p.Package.Set {
		out = append(out, Assignment{colPackage, string(p.Package.Value)})
	}
	if p.Vehicle.Year.Set {
		out = append(out, Assignment{colVehicleYear, nullString(p.Vehicle.Year.Value)})
	}
	if p.Vehicle.Make.Set {
		out = append(out, Assignment{colVehicleMake, p.Vehicle.Make.Value})
	}
	if p.Vehicle.Model.Set {
		out = append(out, Assignment{colVehicleModel, p.Vehicle.Model.Value})
	}
	if p.Vehicle.Trim.Set {
		out = append(out, Assignment{colVehicleTrim, nullString(p.Vehicle.Trim.Value)})
	}
	if p.Customer.Name.Set {
		out = append(out, Assignment{colCustomerName, p.Customer.Name.Value})
	}
	if p.Customer.Email.Set {
		out = append(out, Assignment{colCustomerEmail, nullString(p.Customer.Email.Value)})
	}
	if p.Customer.Phone.Set {
		out = append(out, Assignment{colCustomerPhone, nullString(p.Customer.Phone.Value)})
	}
	if p.JobRequest.Set {
		out = append(out, Assignment{colJobRequest, nullString(p.JobRequest.Value)})
	}
	if p.PhotoURL.Set {
		out = append(out, Assignment{colPhotoURL, nullString(p.PhotoURL.Value)})
	}
	if p.Status.Set {
		out = append(out, Assignment{colStatus, string(p.Status.Value)})
	}
	return out
}

// assign writes a single assignment onto the row, the in-process
// equivalent of the SET clause the postgres repository builds.
func (r *OrderRow) assign(a Assignment) error {
	if a.Column == colID || a.Column == colCreatedAt {
		return fmt.Errorf("column %q is not assignable", a.Column)
	}

	for _, c := range r.columns() {
		if c.name != a.Column {
			continue
		}

		switch t := c.field.(type) {
		case *string:
			v, ok := a.Value.(string)
			if !ok {
				return fmt.Errorf("column %q expects string, got %T", a.Column, a.Value)
			}
			*t = v
		case *sql.NullString:
			v, ok := a.Value.(sql.NullString)
			if !ok {
				return fmt.Errorf("column %q expects sql.NullString, got %T", a.Column, a.Value)
			}
			*t = v
		default:
			return fmt.Errorf("column %q is not assignable", a.Column)
		}
		return nil
	}
	return fmt.Errorf("unknown column %q", a.Column)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

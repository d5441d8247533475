package models

import "encoding/json"

// Optional records whether a JSON field was present at all.
// An explicit null is present and carries the zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

type VehiclePatch struct {
	Year  Optional[string] `json:"year"`
	Make  Optional[string] `json:"make"`
	Model Optional[string] `json:"model"`
	Trim  Optional[string] `json:"trim"`
}

type CustomerPatch struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Phone Optional[string] `json:"phone"`
}

// OrderPatch is a partial update in the nested shape. There is no way to
// express id or createdAt, so those are dropped when a body is decoded.
type OrderPatch struct {
	Package    Optional[PackageLevel] `json:"package"`
	Status     Optional[Status]       `json:"status"`
	Vehicle    VehiclePatch           `json:"vehicle"`
	Customer   CustomerPatch          `json:"customer"`
	JobRequest Optional[string]       `json:"jobRequest"`
	PhotoURL   Optional[string]       `json:"photoUrl"`
}

// Validate rejects patches that would clear a required field or store a
// value outside the package and status enumerations.
func (p OrderPatch) Validate() error {
	if p.Package.Set && !p.Package.Value.Valid() {
		return NewValidationError("Invalid package")
	}
	if p.Status.Set && !p.Status.Value.Valid() {
		return NewValidationError("Invalid status")
	}
	if (p.Vehicle.Make.Set && p.Vehicle.Make.Value == "") ||
		(p.Vehicle.Model.Set && p.Vehicle.Model.Value == "") ||
		(p.Customer.Name.Set && p.Customer.Name.Value == "") {
		return NewValidationError("Missing required fields")
	}
	return nil
}

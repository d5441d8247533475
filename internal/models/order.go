package models

import "time"

type PackageLevel string

const (
	PackageBronze   PackageLevel = "Bronze"
	PackageSilver   PackageLevel = "Silver"
	PackageGold     PackageLevel = "Gold"
	PackagePlatinum PackageLevel = "Platinum"
	PackageDiamond  PackageLevel = "Diamond"
	PackageCustom   PackageLevel = "Custom"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the three order statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Vehicle struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  string `json:"trim"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is the nested shape shared by the service and the HTTP API.
// The flat column layout lives only in the database package.
type Order struct {
	ID         string       `json:"id"`
	CreatedAt  time.Time    `json:"createdAt"`
	Package    PackageLevel `json:"package"`
	Vehicle    Vehicle      `json:"vehicle"`
	Customer   Customer     `json:"customer"`
	JobRequest string       `json:"jobRequest,omitempty"`
	PhotoURL   string       `json:"photoUrl,omitempty"`
	Status     Status       `json:"status"`
}

// NewOrder carries the caller-supplied fields of an order about to be created.
type NewOrder struct {
	Package    PackageLevel
	Vehicle    Vehicle
	Customer   Customer
	JobRequest string
	PhotoURL   string
}

// Validate checks the fields every stored order must have.
func (n NewOrder) Validate() error {
	if n.Package == "" || n.Vehicle.Make == "" || n.Vehicle.Model == "" || n.Customer.Name == "" {
		return NewValidationError("Missing required fields")
	}
	if !n.Package.Valid() {
		return NewValidationError("Invalid package")
	}
	return nil
}

package models

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10,}$`)
)

// CreateOrderForm holds the text fields of the multipart body of POST /orders.
type CreateOrderForm struct {
	Package       string
	VehicleYear   string
	VehicleMake   string
	VehicleModel  string
	VehicleTrim   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	JobRequest    string
}

// NewOrder converts the form into the service's write model.
func (f CreateOrderForm) NewOrder() NewOrder {
	return NewOrder{
		Package: PackageLevel(f.Package),
		Vehicle: Vehicle{
			Year:  f.VehicleYear,
			Make:  f.VehicleMake,
			Model: f.VehicleModel,
			Trim:  f.VehicleTrim,
		},
		Customer: Customer{
			Name:  f.CustomerName,
			Email: f.CustomerEmail,
			Phone: f.CustomerPhone,
		},
		JobRequest: f.JobRequest,
	}
}

// Validate applies the submission-time checks. Email and phone are only
// checked when given and are stored exactly as submitted.
func (f CreateOrderForm) Validate() error {
	if f.Package == "" || f.VehicleMake == "" || f.VehicleModel == "" || f.CustomerName == "" {
		return NewValidationError("Missing required fields")
	}
	if f.CustomerEmail != "" && !emailPattern.MatchString(f.CustomerEmail) {
		return NewValidationError("Please enter a valid email address")
	}
	if f.CustomerPhone != "" && !phonePattern.MatchString(f.CustomerPhone) {
		return NewValidationError("Please enter a valid phone number (at least 10 digits)")
	}
	return nil
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

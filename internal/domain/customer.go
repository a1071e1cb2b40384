package domain

import "time"

// CustomerStatus marks whether a customer relationship is live.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is one client of the business.
type Customer struct {
	ID             string
	FullName       string
	PhoneNumber    string
	Email          string
	WhatsappNumber string
	Address        string
	Notes          string
	Status         CustomerStatus
	Groups         []string
	UserEmail      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerGroup is a named grouping used for bulk communication.
type CustomerGroup struct {
	ID          string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

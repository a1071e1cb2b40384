package domain

import "time"

// BusinessSettings is a singleton record of business-wide configuration.
type BusinessSettings struct {
	ID                   string
	BusinessName         string
	PhoneNumber          string
	Email                string
	Address              string
	NotifyOnStatusChange bool
	NotifyOnCompletion   bool
	UpdatedAt            time.Time
}

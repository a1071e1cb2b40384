package domain

import "time"

// Service is a catalog entry describing an offering the business performs.
type Service struct {
	ID              string
	Name            string
	Description     string
	Icon            string
	IsActive        bool
	DefaultStatuses []AssignmentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

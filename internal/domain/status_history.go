package domain

import "time"

// UnknownActor is recorded when the caller carries no identity.
const UnknownActor = "Unknown"

// StatusHistory is an immutable audit record of one status transition.
// Rows are only ever created by the lifecycle service; there is no update
// or delete path in the domain.
type StatusHistory struct {
	ID             string
	AssignmentID   string
	CustomerID     string
	PreviousStatus AssignmentStatus
	NewStatus      AssignmentStatus
	ChangedBy      string
	Notes          string
	CreatedAt      time.Time
}

package domain

import (
	"fmt"
	"time"
)

// AssignmentStatus enumerates lifecycle states for service assignments.
type AssignmentStatus string

const (
	StatusNewRequest      AssignmentStatus = "new_request"
	StatusWorkStarted     AssignmentStatus = "work_started"
	StatusInProgress      AssignmentStatus = "in_progress"
	StatusWaitingForParts AssignmentStatus = "waiting_for_parts"
	StatusCompleted       AssignmentStatus = "completed"
	StatusOnHold          AssignmentStatus = "on_hold"
	StatusCancelled       AssignmentStatus = "cancelled"
)

// AssignmentStatuses lists every member of the status vocabulary in display order.
func AssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		StatusNewRequest,
		StatusWorkStarted,
		StatusInProgress,
		StatusWaitingForParts,
		StatusCompleted,
		StatusOnHold,
		StatusCancelled,
	}
}

// ParseAssignmentStatus validates a store string against the closed status set.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown assignment status: %q", s)
	}
	return status, nil
}

// Valid reports membership in the status enumeration.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusNewRequest, StatusWorkStarted, StatusInProgress,
		StatusWaitingForParts, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends an assignment's active life.
func (s AssignmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AssignmentPriority enumerates urgency, orthogonal to status.
type AssignmentPriority string

const (
	PriorityLow    AssignmentPriority = "low"
	PriorityMedium AssignmentPriority = "medium"
	PriorityHigh   AssignmentPriority = "high"
	PriorityUrgent AssignmentPriority = "urgent"
)

// ParseAssignmentPriority validates a store string against the priority set.
func ParseAssignmentPriority(s string) (AssignmentPriority, error) {
	priority := AssignmentPriority(s)
	if !priority.Valid() {
		return "", fmt.Errorf("unknown assignment priority: %q", s)
	}
	return priority, nil
}

// Valid reports membership in the priority enumeration.
func (p AssignmentPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ServiceAssignment is one unit of work performed for one customer.
type ServiceAssignment struct {
	ID                     string
	CustomerID             string
	ServiceID              string
	ServiceName            string
	Status                 AssignmentStatus
	Priority               AssignmentPriority
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	ActualCompletionDate   *time.Time
	AssignedTechnician     string
	Notes                  string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

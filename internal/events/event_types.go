package events

import (
	"time"

	"github.com/zayanservices/crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssignmentCreated       EventType = "assignment_created"
	EventAssignmentStatusChanged EventType = "assignment_status_changed"
	EventCommunicationLogged     EventType = "communication_logged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	AssignmentID string      `json:"assignment_id,omitempty"`
	CustomerID   string      `json:"customer_id,omitempty"`
	Actor        string      `json:"actor,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// AssignmentCreatedPayload payload.
type AssignmentCreatedPayload struct {
	ServiceID   string                    `json:"service_id,omitempty"`
	ServiceName string                    `json:"service_name"`
	Priority    domain.AssignmentPriority `json:"priority"`
}

// AssignmentStatusChangedPayload payload.
type AssignmentStatusChangedPayload struct {
	PreviousStatus domain.AssignmentStatus `json:"previous_status"`
	NewStatus      domain.AssignmentStatus `json:"new_status"`
	Notes          string                  `json:"notes,omitempty"`
}

// CommunicationLoggedPayload payload.
type CommunicationLoggedPayload struct {
	Channel    domain.Channel `json:"channel"`
	IsBulk     bool           `json:"is_bulk"`
	Recipients int            `json:"recipients"`
}

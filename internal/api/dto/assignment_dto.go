package dto

import (
	"time"

	"github.com/zayanservices/crm-service/internal/domain"
)

// CreateAssignmentRequest payload.
type CreateAssignmentRequest struct {
	CustomerID             string  `json:"customer_id"`
	ServiceID              string  `json:"service_id"`
	ServiceName            string  `json:"service_name"`
	Status                 string  `json:"status"`
	Priority               string  `json:"priority"`
	StartDate              *string `json:"start_date"`
	ExpectedCompletionDate *string `json:"expected_completion_date"`
	AssignedTechnician     string  `json:"assigned_technician"`
	Notes                  string  `json:"notes"`
}

// UpdateAssignmentRequest payload. Status is deliberately absent; status
// moves go through the dedicated transition endpoint.
type UpdateAssignmentRequest struct {
	ServiceID              *string `json:"service_id"`
	ServiceName            *string `json:"service_name"`
	Priority               *string `json:"priority"`
	StartDate              *string `json:"start_date"`
	ExpectedCompletionDate *string `json:"expected_completion_date"`
	AssignedTechnician     *string `json:"assigned_technician"`
	Notes                  *string `json:"notes"`
}

// ChangeStatusRequest payload for the transition endpoint.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// AssignmentResponse full assignment view.
type AssignmentResponse struct {
	ID                     string                    `json:"id"`
	CustomerID             string                    `json:"customer_id"`
	ServiceID              string                    `json:"service_id,omitempty"`
	ServiceName            string                    `json:"service_name"`
	Status                 domain.AssignmentStatus   `json:"status"`
	Priority               domain.AssignmentPriority `json:"priority"`
	StartDate              *time.Time                `json:"start_date,omitempty"`
	ExpectedCompletionDate *time.Time                `json:"expected_completion_date,omitempty"`
	ActualCompletionDate   *time.Time                `json:"actual_completion_date,omitempty"`
	AssignedTechnician     string                    `json:"assigned_technician,omitempty"`
	Notes                  string                    `json:"notes,omitempty"`
	CreatedAt              time.Time                 `json:"created_at"`
	UpdatedAt              time.Time                 `json:"updated_at"`
}

// StatusHistoryResponse one audit entry.
type StatusHistoryResponse struct {
	ID             string                  `json:"id"`
	AssignmentID   string                  `json:"assignment_id"`
	CustomerID     string                  `json:"customer_id"`
	PreviousStatus domain.AssignmentStatus `json:"previous_status"`
	NewStatus      domain.AssignmentStatus `json:"new_status"`
	ChangedBy      string                  `json:"changed_by"`
	Notes          string                  `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ChangeStatusResponse carries the updated assignment and the audit entry
// recorded for the transition. History is null when the change was a no-op.
type ChangeStatusResponse struct {
	Assignment AssignmentResponse     `json:"assignment"`
	History    *StatusHistoryResponse `json:"history"`
}

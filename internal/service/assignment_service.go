package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// AssignmentService coordinates assignment CRUD. Status never moves here:
// every status change goes through the LifecycleService so the audit trail
// stays complete. Edits to the remaining fields deliberately write no
// history.
type AssignmentService struct {
	assignments repository.AssignmentRepository
	customers   repository.CustomerRepository
	services    repository.ServiceRepository
	dispatcher  events.Dispatcher
}

// AssignmentDependencies bundles repositories for the assignment service.
type AssignmentDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	CustomerRepo   repository.CustomerRepository
	ServiceRepo    repository.ServiceRepository
	Dispatcher     events.Dispatcher
}

// AssignmentCreateInput describes creation payload.
type AssignmentCreateInput struct {
	CustomerID             string
	ServiceID              string
	ServiceName            string
	Status                 domain.AssignmentStatus
	Priority               domain.AssignmentPriority
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	AssignedTechnician     string
	Notes                  string
}

// AssignmentUpdateInput describes the directly editable fields. Status and
// actual_completion_date are absent on purpose.
type AssignmentUpdateInput struct {
	ServiceID              *string
	ServiceName            *string
	Priority               *domain.AssignmentPriority
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	AssignedTechnician     *string
	Notes                  *string
}

// AssignmentFilter describes listing filters.
type AssignmentFilter struct {
	CustomerID *string
	ServiceID  *string
	Statuses   []domain.AssignmentStatus
	Priorities []domain.AssignmentPriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// NewAssignmentService constructs the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		customers:   deps.CustomerRepo,
		services:    deps.ServiceRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create records a new assignment. Creation writes no history row; the
// audit trail begins at the first status transition.
func (s *AssignmentService) Create(ctx context.Context, input AssignmentCreateInput) (*domain.ServiceAssignment, error) {
	if input.CustomerID == "" {
		return nil, apperrors.NewValidationError("customer_id required", nil)
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": input.CustomerID})
		}
		return nil, err
	}

	serviceName := strings.TrimSpace(input.ServiceName)
	if input.ServiceID != "" {
		svc, err := s.services.GetByID(ctx, input.ServiceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("service", map[string]any{"id": input.ServiceID})
			}
			return nil, err
		}
		if serviceName == "" {
			serviceName = svc.Name
		}
	}

	assignment := &domain.ServiceAssignment{
		CustomerID:             input.CustomerID,
		ServiceID:              input.ServiceID,
		ServiceName:            serviceName,
		Status:                 input.Status,
		Priority:               input.Priority,
		StartDate:              input.StartDate,
		ExpectedCompletionDate: input.ExpectedCompletionDate,
		AssignedTechnician:     strings.TrimSpace(input.AssignedTechnician),
		Notes:                  input.Notes,
	}
	if assignment.Status == "" {
		assignment.Status = domain.StatusNewRequest
	}
	if !assignment.Status.Valid() {
		return nil, apperrors.NewInvalidStatus(string(assignment.Status))
	}
	if assignment.Priority == "" {
		assignment.Priority = domain.PriorityMedium
	}
	if !assignment.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": assignment.Priority})
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:         events.EventAssignmentCreated,
		AssignmentID: assignment.ID,
		CustomerID:   assignment.CustomerID,
		Payload: events.AssignmentCreatedPayload{
			ServiceID:   assignment.ServiceID,
			ServiceName: assignment.ServiceName,
			Priority:    assignment.Priority,
		},
	})
	return assignment, nil
}

// Get fetches one assignment.
func (s *AssignmentService) Get(ctx context.Context, id string) (*domain.ServiceAssignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"id": id})
		}
		return nil, err
	}
	return assignment, nil
}

// List returns assignments matching the filter, newest first.
func (s *AssignmentService) List(ctx context.Context, filter AssignmentFilter) ([]domain.ServiceAssignment, error) {
	return s.assignments.ListWithFilter(ctx, repository.AssignmentFilter{
		CustomerID: filter.CustomerID,
		ServiceID:  filter.ServiceID,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update edits non-status fields.
func (s *AssignmentService) Update(ctx context.Context, id string, input AssignmentUpdateInput) (*domain.ServiceAssignment, error) {
	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ServiceID != nil {
		assignment.ServiceID = *input.ServiceID
	}
	if input.ServiceName != nil {
		assignment.ServiceName = strings.TrimSpace(*input.ServiceName)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		assignment.Priority = *input.Priority
	}
	if input.StartDate != nil {
		assignment.StartDate = input.StartDate
	}
	if input.ExpectedCompletionDate != nil {
		assignment.ExpectedCompletionDate = input.ExpectedCompletionDate
	}
	if input.AssignedTechnician != nil {
		assignment.AssignedTechnician = strings.TrimSpace(*input.AssignedTechnician)
	}
	if input.Notes != nil {
		assignment.Notes = *input.Notes
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

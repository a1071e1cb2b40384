package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/zayanservices/crm-service/internal/cache"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// PortalService renders the customer-facing view of their assignments.
// Views are cached in redis and invalidated by lifecycle writes.
type PortalService struct {
	customers      repository.CustomerRepository
	assignments    repository.AssignmentRepository
	history        repository.StatusHistoryRepository
	communications repository.CommunicationRepository
	settings       repository.SettingsRepository
	views          *cache.ViewCache
	logger         *zap.Logger
}

// PortalDependencies wires the service.
type PortalDependencies struct {
	Customers      repository.CustomerRepository
	Assignments    repository.AssignmentRepository
	History        repository.StatusHistoryRepository
	Communications repository.CommunicationRepository
	Settings       repository.SettingsRepository
	Views          *cache.ViewCache
	Logger         *zap.Logger
}

// NewPortalService constructs the service.
func NewPortalService(deps PortalDependencies) *PortalService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalService{
		customers:      deps.Customers,
		assignments:    deps.Assignments,
		history:        deps.History,
		communications: deps.Communications,
		settings:       deps.Settings,
		views:          deps.Views,
		logger:         logger,
	}
}

// ProgressStepView is one rendered tracker step.
type ProgressStepView struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Order  float64 `json:"order"`
	Active bool    `json:"active"`
}

// AssignmentProgressView is a customer's view of one assignment.
type AssignmentProgressView struct {
	AssignmentID           string                  `json:"assignment_id"`
	ServiceName            string                  `json:"service_name"`
	Status                 domain.AssignmentStatus `json:"status"`
	Suspended              bool                    `json:"suspended"`
	Steps                  []ProgressStepView      `json:"steps"`
	Timeline               []TimelineEntry         `json:"timeline,omitempty"`
	ExpectedCompletionDate *time.Time              `json:"expected_completion_date,omitempty"`
	ActualCompletionDate   *time.Time              `json:"actual_completion_date,omitempty"`
}

// TimelineEntry is one row of the customer-visible status timeline.
type TimelineEntry struct {
	Status    domain.AssignmentStatus `json:"status"`
	Notes     string                  `json:"notes,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// PortalMessage is a communication as shown to its recipient.
type PortalMessage struct {
	Channel   domain.Channel `json:"channel"`
	Subject   string         `json:"subject,omitempty"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"created_at"`
}

// PortalView is the full customer portal payload.
type PortalView struct {
	CustomerID   string                   `json:"customer_id"`
	CustomerName string                   `json:"customer_name"`
	BusinessName string                   `json:"business_name"`
	Assignments  []AssignmentProgressView `json:"assignments"`
	Messages     []PortalMessage          `json:"messages"`
	RenderedAt   time.Time                `json:"rendered_at"`
}

// ViewForEmail resolves the portal view for the signed-in customer's email.
func (s *PortalService) ViewForEmail(ctx context.Context, email string) (*PortalView, error) {
	customer, err := s.customers.GetByUserEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"user_email": email})
		}
		return nil, err
	}
	return s.viewForCustomer(ctx, customer)
}

func (s *PortalService) viewForCustomer(ctx context.Context, customer *domain.Customer) (*PortalView, error) {
	key := cache.PortalKey(customer.ID)
	if s.views != nil {
		var cached PortalView
		if hit, err := s.views.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	customerID := customer.ID
	assignments, err := s.assignments.ListWithFilter(ctx, repository.AssignmentFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}

	businessName := ""
	if s.settings != nil {
		if settings, err := s.settings.Get(ctx); err == nil && settings != nil {
			businessName = settings.BusinessName
		}
	}

	timelines := map[string][]TimelineEntry{}
	if s.history != nil {
		entries, err := s.history.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			timelines[entry.AssignmentID] = append(timelines[entry.AssignmentID], TimelineEntry{
				Status:    entry.NewStatus,
				Notes:     entry.Notes,
				CreatedAt: entry.CreatedAt,
			})
		}
	}

	view := &PortalView{
		CustomerID:   customer.ID,
		CustomerName: customer.FullName,
		BusinessName: businessName,
		Assignments:  make([]AssignmentProgressView, 0, len(assignments)),
		Messages:     []PortalMessage{},
		RenderedAt:   time.Now().UTC(),
	}
	for _, assignment := range assignments {
		rendered := RenderProgress(assignment)
		rendered.Timeline = timelines[assignment.ID]
		view.Assignments = append(view.Assignments, rendered)
	}

	if s.communications != nil {
		comms, err := s.communications.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		for _, comm := range comms {
			view.Messages = append(view.Messages, PortalMessage{
				Channel:   comm.Channel,
				Subject:   comm.Subject,
				Message:   comm.Message,
				CreatedAt: comm.CreatedAt,
			})
		}
	}

	if s.views != nil {
		s.views.SetJSON(ctx, key, view)
	}
	return view, nil
}

// RenderProgress projects one assignment onto the step tracker. Suspended
// statuses render no active bar; the caller shows a banner instead.
func RenderProgress(assignment domain.ServiceAssignment) AssignmentProgressView {
	suspended := domain.SuspendsProgress(assignment.Status)
	steps := domain.BarSteps()
	rendered := make([]ProgressStepView, 0, len(steps))
	for _, step := range steps {
		rendered = append(rendered, ProgressStepView{
			Key:    string(step.Key),
			Label:  step.Label,
			Order:  step.Order,
			Active: !suspended && domain.IsStepActive(assignment.Status, step),
		})
	}
	return AssignmentProgressView{
		AssignmentID:           assignment.ID,
		ServiceName:            assignment.ServiceName,
		Status:                 assignment.Status,
		Suspended:              suspended,
		Steps:                  rendered,
		ExpectedCompletionDate: assignment.ExpectedCompletionDate,
		ActualCompletionDate:   assignment.ActualCompletionDate,
	}
}

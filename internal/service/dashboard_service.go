package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/repository"
)

// DashboardService aggregates the overview numbers shown on the landing page.
type DashboardService struct {
	customers      repository.CustomerRepository
	assignments    repository.AssignmentRepository
	communications repository.CommunicationRepository
	logger         *zap.Logger
}

// DashboardDependencies wires the service.
type DashboardDependencies struct {
	Customers      repository.CustomerRepository
	Assignments    repository.AssignmentRepository
	Communications repository.CommunicationRepository
	Logger         *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		customers:      deps.Customers,
		assignments:    deps.Assignments,
		communications: deps.Communications,
		logger:         logger,
	}
}

// DashboardStats is the overview payload.
type DashboardStats struct {
	ActiveCustomers      int                        `json:"active_customers"`
	PendingAssignments   int                        `json:"pending_assignments"`
	CompletedAssignments int                        `json:"completed_assignments"`
	UrgentActive         int                        `json:"urgent_active"`
	AssignmentsByService map[string]int             `json:"assignments_by_service"`
	RecentAssignments    []domain.ServiceAssignment `json:"recent_assignments"`
	RecentCommunications []domain.Communication     `json:"recent_communications"`
}

// Stats computes the dashboard overview.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	activeCustomers, err := s.customers.CountByStatus(ctx, domain.CustomerStatusActive)
	if err != nil {
		return nil, err
	}

	openStatuses := []domain.AssignmentStatus{
		domain.StatusNewRequest,
		domain.StatusWorkStarted,
		domain.StatusInProgress,
		domain.StatusWaitingForParts,
		domain.StatusOnHold,
	}
	pending, err := s.assignments.CountWithFilter(ctx, repository.AssignmentFilter{Statuses: openStatuses})
	if err != nil {
		return nil, err
	}
	urgent, err := s.assignments.CountWithFilter(ctx, repository.AssignmentFilter{
		Statuses:   openStatuses,
		Priorities: []domain.AssignmentPriority{domain.PriorityUrgent},
	})
	if err != nil {
		return nil, err
	}
	completed, err := s.assignments.CountWithFilter(ctx, repository.AssignmentFilter{
		Statuses: []domain.AssignmentStatus{domain.StatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	byService, err := s.assignments.CountByService(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.assignments.ListWithFilter(ctx, repository.AssignmentFilter{Limit: 10})
	if err != nil {
		return nil, err
	}

	recentComms, err := s.communications.List(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ActiveCustomers:      activeCustomers,
		PendingAssignments:   pending,
		CompletedAssignments: completed,
		UrgentActive:         urgent,
		AssignmentsByService: byService,
		RecentAssignments:    recent,
		RecentCommunications: recentComms,
	}, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/zayanservices/crm-service/internal/cache"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// LifecycleService mediates every change to an assignment's status field and
// guarantees a matching audit entry exists for every real transition. No
// other code path mutates status.
type LifecycleService struct {
	assignments repository.AssignmentRepository
	history     repository.StatusHistoryRepository
	views       cache.Invalidator
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	now         func() time.Time
}

// LifecycleDependencies bundles collaborators for the lifecycle service.
type LifecycleDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	HistoryRepo    repository.StatusHistoryRepository
	Views          cache.Invalidator
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Now            func() time.Time
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		assignments: deps.AssignmentRepo,
		history:     deps.HistoryRepo,
		views:       deps.Views,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		now:         now,
	}
}

// ApplyStatusChange moves an assignment to newStatus and appends one history
// row. Re-selecting the current status is a deliberate no-op: no writes, no
// history, nil history row returned.
//
// The status update and the history append are two independent writes with
// no transaction spanning them. When the first succeeds and the second
// fails, the assignment is left ahead of its own audit trail; that anomaly
// is surfaced as AUDIT_WRITE_FAILED for out-of-band reconciliation rather
// than rolled back.
func (s *LifecycleService) ApplyStatusChange(ctx context.Context, assignmentID string, newStatus domain.AssignmentStatus, note, actor string) (*domain.ServiceAssignment, *domain.StatusHistory, error) {
	if !newStatus.Valid() {
		return nil, nil, apperrors.NewInvalidStatus(string(newStatus))
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = domain.UnknownActor
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("assignment", map[string]any{"id": assignmentID})
		}
		return nil, nil, err
	}

	if assignment.Status == newStatus {
		return assignment, nil, nil
	}

	previous := assignment.Status
	assignment.Status = newStatus
	if newStatus == domain.StatusCompleted {
		completed := dateOnly(s.now())
		assignment.ActualCompletionDate = &completed
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, nil, err
	}

	entry := &domain.StatusHistory{
		AssignmentID:   assignment.ID,
		CustomerID:     assignment.CustomerID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ChangedBy:      actor,
		Notes:          note,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Error("status updated but audit write failed",
			zap.String("assignment_id", assignment.ID),
			zap.String("previous_status", string(previous)),
			zap.String("new_status", string(newStatus)),
			zap.Error(err),
		)
		return assignment, nil, apperrors.NewAuditWriteFailure(assignment.ID, err)
	}

	if s.views != nil {
		s.views.InvalidateAssignmentViews(ctx, assignment.ID, assignment.CustomerID)
	}
	s.publish(ctx, events.Event{
		Type:         events.EventAssignmentStatusChanged,
		AssignmentID: assignment.ID,
		CustomerID:   assignment.CustomerID,
		Actor:        actor,
		Payload: events.AssignmentStatusChangedPayload{
			PreviousStatus: previous,
			NewStatus:      newStatus,
			Notes:          note,
		},
	})
	return assignment, entry, nil
}

// HistoryForAssignment lists audit entries newest first.
func (s *LifecycleService) HistoryForAssignment(ctx context.Context, assignmentID string) ([]domain.StatusHistory, error) {
	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"id": assignmentID})
		}
		return nil, err
	}
	return s.history.ListByAssignment(ctx, assignmentID)
}

func (s *LifecycleService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// dateOnly truncates to calendar-date precision; completion dates carry no
// time component.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

func newLifecycleFixture(assignment *domain.ServiceAssignment) (*LifecycleService, *fakeAssignmentRepo, *fakeHistoryRepo, *fakeInvalidator) {
	assignments := newFakeAssignmentRepo(assignment)
	history := &fakeHistoryRepo{}
	views := &fakeInvalidator{}
	svc := NewLifecycleService(LifecycleDependencies{
		AssignmentRepo: assignments,
		HistoryRepo:    history,
		Views:          views,
		Now:            func() time.Time { return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC) },
	})
	return svc, assignments, history, views
}

func baseAssignment(status domain.AssignmentStatus) *domain.ServiceAssignment {
	return &domain.ServiceAssignment{
		ID:          "assignment-1",
		CustomerID:  "customer-1",
		ServiceName: "AC Repair",
		Status:      status,
		Priority:    domain.PriorityMedium,
	}
}

func TestApplyStatusChangeRecordsHistory(t *testing.T) {
	svc, assignments, history, views := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	updated, entry, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusInProgress, "technician dispatched", "tech@zayan.om")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, updated.Status)
	require.NotNil(t, entry)
	assert.Equal(t, domain.StatusNewRequest, entry.PreviousStatus)
	assert.Equal(t, domain.StatusInProgress, entry.NewStatus)
	assert.Equal(t, "tech@zayan.om", entry.ChangedBy)
	assert.Equal(t, "technician dispatched", entry.Notes)
	assert.Equal(t, "customer-1", entry.CustomerID)
	assert.Len(t, history.entries, 1)
	assert.Equal(t, 1, assignments.updateCalls)
	assert.Equal(t, []string{"assignment-1/customer-1"}, views.calls)
}

func TestApplyStatusChangeSameStatusIsNoOp(t *testing.T) {
	svc, assignments, history, views := newLifecycleFixture(baseAssignment(domain.StatusInProgress))

	updated, entry, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusInProgress, "", "tech@zayan.om")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Nil(t, entry)
	assert.Empty(t, history.entries)
	assert.Zero(t, assignments.updateCalls)
	assert.Empty(t, views.calls)
}

func TestApplyStatusChangeCompletedStampsDate(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(baseAssignment(domain.StatusInProgress))

	updated, _, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusCompleted, "", "tech@zayan.om")
	require.NoError(t, err)

	require.NotNil(t, updated.ActualCompletionDate)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *updated.ActualCompletionDate)
}

func TestApplyStatusChangeCompletionDateSurvivesReopen(t *testing.T) {
	svc, repo, _, _ := newLifecycleFixture(baseAssignment(domain.StatusInProgress))

	_, _, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusCompleted, "", "tech@zayan.om")
	require.NoError(t, err)

	updated, _, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusInProgress, "warranty return", "tech@zayan.om")
	require.NoError(t, err)

	require.NotNil(t, updated.ActualCompletionDate)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *updated.ActualCompletionDate)

	stored, err := repo.GetByID(context.Background(), "assignment-1")
	require.NoError(t, err)
	assert.NotNil(t, stored.ActualCompletionDate)
}

func TestApplyStatusChangeBlankActorFallsBack(t *testing.T) {
	svc, _, history, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	_, entry, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusWorkStarted, "", "   ")
	require.NoError(t, err)

	assert.Equal(t, domain.UnknownActor, entry.ChangedBy)
	assert.Equal(t, domain.UnknownActor, history.entries[0].ChangedBy)
}

func TestApplyStatusChangeInvalidStatus(t *testing.T) {
	svc, assignments, history, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	_, _, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.AssignmentStatus("shipped"), "", "tech@zayan.om")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	assert.Empty(t, history.entries)
	assert.Zero(t, assignments.updateCalls)
}

func TestApplyStatusChangeUnknownAssignment(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	_, _, err := svc.ApplyStatusChange(context.Background(), "missing", domain.StatusInProgress, "", "tech@zayan.om")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestApplyStatusChangeAuditWriteFailure(t *testing.T) {
	svc, assignments, history, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))
	history.createErr = errors.New("connection reset")

	updated, entry, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusInProgress, "", "tech@zayan.om")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "AUDIT_WRITE_FAILED", domainErr.Code)
	assert.Nil(t, entry)

	// the status write itself landed; only the audit trail is behind
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, 1, assignments.updateCalls)
	stored, getErr := assignments.GetByID(context.Background(), "assignment-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusInProgress, stored.Status)
}

func TestApplyStatusChangeAnyTransitionAllowed(t *testing.T) {
	// membership is the only gate; cancelled back to in_progress is legal
	svc, _, history, _ := newLifecycleFixture(baseAssignment(domain.StatusCancelled))

	updated, entry, err := svc.ApplyStatusChange(context.Background(), "assignment-1", domain.StatusInProgress, "", "tech@zayan.om")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, domain.StatusCancelled, entry.PreviousStatus)
	assert.Len(t, history.entries, 1)
}

func TestHistoryForAssignmentOrdersNewestFirst(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	steps := []domain.AssignmentStatus{domain.StatusWorkStarted, domain.StatusInProgress, domain.StatusCompleted}
	for _, status := range steps {
		_, _, err := svc.ApplyStatusChange(context.Background(), "assignment-1", status, "", "tech@zayan.om")
		require.NoError(t, err)
	}

	entries, err := svc.HistoryForAssignment(context.Background(), "assignment-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.StatusCompleted, entries[0].NewStatus)
	assert.Equal(t, domain.StatusWorkStarted, entries[2].NewStatus)
}

func TestHistoryForAssignmentUnknownAssignment(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(baseAssignment(domain.StatusNewRequest))

	_, err := svc.HistoryForAssignment(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

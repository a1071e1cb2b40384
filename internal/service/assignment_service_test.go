package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

func newAssignmentFixture() (*AssignmentService, *fakeAssignmentRepo, events.Dispatcher) {
	assignments := newFakeAssignmentRepo()
	customers := newFakeCustomerRepo(&domain.Customer{ID: "customer-1", FullName: "Ali", Status: domain.CustomerStatusActive})
	services := newFakeServiceRepo(&domain.Service{ID: "service-1", Name: "AC Repair", IsActive: true})
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAssignmentService(AssignmentDependencies{
		AssignmentRepo: assignments,
		CustomerRepo:   customers,
		ServiceRepo:    services,
		Dispatcher:     dispatcher,
	})
	return svc, assignments, dispatcher
}

func TestCreateAssignmentDefaults(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	assignment, err := svc.Create(context.Background(), AssignmentCreateInput{
		CustomerID: "customer-1",
		ServiceID:  "service-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNewRequest, assignment.Status)
	assert.Equal(t, domain.PriorityMedium, assignment.Priority)
	assert.Equal(t, "AC Repair", assignment.ServiceName)
	assert.Nil(t, assignment.ActualCompletionDate)
}

func TestCreateAssignmentPublishesCreatedEvent(t *testing.T) {
	svc, _, dispatcher := newAssignmentFixture()

	var received []events.Event
	dispatcher.Subscribe(events.EventAssignmentCreated, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	assignment, err := svc.Create(context.Background(), AssignmentCreateInput{CustomerID: "customer-1", ServiceID: "service-1"})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, assignment.ID, received[0].AssignmentID)
	assert.Equal(t, "customer-1", received[0].CustomerID)
}

func TestCreateAssignmentValidation(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	_, err := svc.Create(context.Background(), AssignmentCreateInput{ServiceID: "service-1"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), AssignmentCreateInput{CustomerID: "missing", ServiceID: "service-1"})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	_, err = svc.Create(context.Background(), AssignmentCreateInput{CustomerID: "customer-1", ServiceID: "missing"})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	_, err = svc.Create(context.Background(), AssignmentCreateInput{CustomerID: "customer-1", Status: domain.AssignmentStatus("shipped")})
	assert.Equal(t, "INVALID_STATUS", apperrors.ToDomainError(err).Code)
}

func TestUpdateAssignmentDoesNotTouchStatus(t *testing.T) {
	svc, assignments, _ := newAssignmentFixture()

	created, err := svc.Create(context.Background(), AssignmentCreateInput{CustomerID: "customer-1", ServiceID: "service-1"})
	require.NoError(t, err)

	urgent := domain.PriorityUrgent
	notes := "customer called twice"
	updated, err := svc.Update(context.Background(), created.ID, AssignmentUpdateInput{
		Priority: &urgent,
		Notes:    &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityUrgent, updated.Priority)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, domain.StatusNewRequest, updated.Status)

	stored, err := assignments.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNewRequest, stored.Status)
}

func TestDeleteAssignmentUnknown(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

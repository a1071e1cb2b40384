package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

func TestRenderProgressActiveSteps(t *testing.T) {
	view := RenderProgress(domain.ServiceAssignment{
		ID:          "assignment-1",
		ServiceName: "AC Repair",
		Status:      domain.StatusWorkStarted,
	})

	assert.False(t, view.Suspended)
	require.Len(t, view.Steps, 4)
	assert.True(t, view.Steps[0].Active)
	assert.True(t, view.Steps[1].Active)
	assert.False(t, view.Steps[2].Active)
	assert.False(t, view.Steps[3].Active)
}

func TestRenderProgressWaitingKeepsBarAtInProgress(t *testing.T) {
	view := RenderProgress(domain.ServiceAssignment{Status: domain.StatusWaitingForParts})

	require.Len(t, view.Steps, 4)
	assert.True(t, view.Steps[2].Active)
	assert.False(t, view.Steps[3].Active)
}

func TestRenderProgressSuspendedShowsNoActiveSteps(t *testing.T) {
	for _, status := range []domain.AssignmentStatus{domain.StatusOnHold, domain.StatusCancelled} {
		view := RenderProgress(domain.ServiceAssignment{Status: status})
		assert.True(t, view.Suspended, "status %s", status)
		for _, step := range view.Steps {
			assert.False(t, step.Active, "status %s step %s", status, step.Key)
		}
	}
}

func TestViewForEmailBuildsPortalView(t *testing.T) {
	customers := newFakeCustomerRepo(&domain.Customer{
		ID:        "customer-1",
		FullName:  "Ali",
		UserEmail: "ali@example.com",
		Status:    domain.CustomerStatusActive,
	})
	assignments := newFakeAssignmentRepo(&domain.ServiceAssignment{
		ID:          "assignment-1",
		CustomerID:  "customer-1",
		ServiceName: "AC Repair",
		Status:      domain.StatusInProgress,
	})
	history := &fakeHistoryRepo{}
	require.NoError(t, history.Create(context.Background(), &domain.StatusHistory{
		AssignmentID:   "assignment-1",
		CustomerID:     "customer-1",
		PreviousStatus: domain.StatusNewRequest,
		NewStatus:      domain.StatusInProgress,
		ChangedBy:      "tech@zayan.om",
	}))
	comms := &fakeCommunicationRepo{}
	customerID := "customer-1"
	require.NoError(t, comms.Create(context.Background(), &domain.Communication{
		CustomerID: &customerID,
		Channel:    domain.ChannelWhatsapp,
		Message:    "work has started",
		Status:     "sent",
	}))

	svc := NewPortalService(PortalDependencies{
		Customers:      customers,
		Assignments:    assignments,
		History:        history,
		Communications: comms,
	})

	view, err := svc.ViewForEmail(context.Background(), "ali@example.com")
	require.NoError(t, err)

	assert.Equal(t, "customer-1", view.CustomerID)
	assert.Equal(t, "Ali", view.CustomerName)
	require.Len(t, view.Assignments, 1)
	assert.Equal(t, domain.StatusInProgress, view.Assignments[0].Status)
	require.Len(t, view.Assignments[0].Timeline, 1)
	assert.Equal(t, domain.StatusInProgress, view.Assignments[0].Timeline[0].Status)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "work has started", view.Messages[0].Message)
}

func TestViewForEmailUnknownCustomer(t *testing.T) {
	svc := NewPortalService(PortalDependencies{
		Customers:   newFakeCustomerRepo(),
		Assignments: newFakeAssignmentRepo(),
	})

	_, err := svc.ViewForEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

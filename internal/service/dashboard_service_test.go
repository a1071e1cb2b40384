package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
)

func TestDashboardStats(t *testing.T) {
	customers := newFakeCustomerRepo(
		&domain.Customer{ID: "customer-1", Status: domain.CustomerStatusActive},
		&domain.Customer{ID: "customer-2", Status: domain.CustomerStatusActive},
		&domain.Customer{ID: "customer-3", Status: domain.CustomerStatusInactive},
	)
	assignments := newFakeAssignmentRepo(
		&domain.ServiceAssignment{ID: "a1", CustomerID: "customer-1", ServiceID: "service-1", Status: domain.StatusInProgress, Priority: domain.PriorityUrgent},
		&domain.ServiceAssignment{ID: "a2", CustomerID: "customer-1", ServiceID: "service-1", Status: domain.StatusOnHold, Priority: domain.PriorityLow},
		&domain.ServiceAssignment{ID: "a3", CustomerID: "customer-2", ServiceID: "service-2", Status: domain.StatusCompleted, Priority: domain.PriorityUrgent},
	)
	svc := NewDashboardService(DashboardDependencies{
		Customers:      customers,
		Assignments:    assignments,
		Communications: &fakeCommunicationRepo{},
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ActiveCustomers)
	assert.Equal(t, 2, stats.PendingAssignments)
	assert.Equal(t, 1, stats.CompletedAssignments)
	assert.Equal(t, 1, stats.UrgentActive)
	assert.Equal(t, map[string]int{"service-1": 2, "service-2": 1}, stats.AssignmentsByService)
}

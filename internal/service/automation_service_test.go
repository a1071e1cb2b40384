package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
)

func newAutomationFixture(rules ...domain.AutomationRule) (*AutomationService, *fakeCommunicationRepo, *fakeRuleRepo) {
	ruleRepo := &fakeRuleRepo{rules: rules}
	commRepo := &fakeCommunicationRepo{}
	assignments := newFakeAssignmentRepo(&domain.ServiceAssignment{
		ID:          "assignment-1",
		CustomerID:  "customer-1",
		ServiceName: "AC Repair",
		Status:      domain.StatusInProgress,
	})
	svc := NewAutomationService(AutomationDependencies{
		Rules:          ruleRepo,
		Communications: commRepo,
		Assignments:    assignments,
	})
	return svc, commRepo, ruleRepo
}

func statusChangedEvent(newStatus domain.AssignmentStatus) events.Event {
	return events.Event{
		Type:         events.EventAssignmentStatusChanged,
		AssignmentID: "assignment-1",
		CustomerID:   "customer-1",
		Payload: events.AssignmentStatusChangedPayload{
			PreviousStatus: domain.StatusInProgress,
			NewStatus:      newStatus,
		},
	}
}

func TestStatusChangeRuleFiresOnMatchingStatus(t *testing.T) {
	svc, comms, _ := newAutomationFixture(domain.AutomationRule{
		ID:              "rule-1",
		Trigger:         domain.TriggerStatusChange,
		StatusValue:     domain.StatusWaitingForParts,
		Channel:         domain.ChannelWhatsapp,
		MessageTemplate: "Update on your {{service_name}} request",
		IsEnabled:       true,
	})

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusWaitingForParts)))

	require.Len(t, comms.created, 1)
	comm := comms.created[0]
	require.NotNil(t, comm.CustomerID)
	assert.Equal(t, "customer-1", *comm.CustomerID)
	assert.Equal(t, domain.ChannelWhatsapp, comm.Channel)
	assert.Equal(t, "Update on your AC Repair request", comm.Message)
	assert.False(t, comm.IsBulk)
}

func TestStatusChangeRuleSkipsNonMatchingStatus(t *testing.T) {
	svc, comms, _ := newAutomationFixture(domain.AutomationRule{
		ID:          "rule-1",
		Trigger:     domain.TriggerStatusChange,
		StatusValue: domain.StatusWaitingForParts,
		Channel:     domain.ChannelSMS,
		IsEnabled:   true,
	})

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusCompleted)))
	assert.Empty(t, comms.created)
}

func TestStatusChangeRuleWithoutFilterMatchesAnyStatus(t *testing.T) {
	svc, comms, _ := newAutomationFixture(domain.AutomationRule{
		ID:        "rule-1",
		Trigger:   domain.TriggerStatusChange,
		Channel:   domain.ChannelEmail,
		IsEnabled: true,
	})

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusOnHold)))
	assert.Len(t, comms.created, 1)
}

func TestCompletedAndOnHoldTriggers(t *testing.T) {
	svc, comms, _ := newAutomationFixture(
		domain.AutomationRule{ID: "rule-1", Trigger: domain.TriggerServiceCompleted, Channel: domain.ChannelEmail, IsEnabled: true},
		domain.AutomationRule{ID: "rule-2", Trigger: domain.TriggerServiceOnHold, Channel: domain.ChannelSMS, IsEnabled: true},
	)

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusCompleted)))
	require.Len(t, comms.created, 1)
	assert.Equal(t, domain.ChannelEmail, comms.created[0].Channel)

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusOnHold)))
	require.Len(t, comms.created, 2)
	assert.Equal(t, domain.ChannelSMS, comms.created[1].Channel)
}

func TestDisabledRuleNeverFires(t *testing.T) {
	svc, comms, _ := newAutomationFixture(domain.AutomationRule{
		ID:      "rule-1",
		Trigger: domain.TriggerStatusChange,
		Channel: domain.ChannelEmail,
	})

	require.NoError(t, svc.HandleStatusChanged(context.Background(), statusChangedEvent(domain.StatusCompleted)))
	assert.Empty(t, comms.created)
}

func TestNewServiceTriggerFiresOnCreation(t *testing.T) {
	svc, comms, _ := newAutomationFixture(domain.AutomationRule{
		ID:              "rule-1",
		Trigger:         domain.TriggerNewService,
		Channel:         domain.ChannelWhatsapp,
		MessageTemplate: "We received your {{service_name}} request",
		IsEnabled:       true,
	})

	event := events.Event{
		Type:         events.EventAssignmentCreated,
		AssignmentID: "assignment-1",
		CustomerID:   "customer-1",
		Payload:      events.AssignmentCreatedPayload{ServiceName: "AC Repair"},
	}
	require.NoError(t, svc.HandleAssignmentCreated(context.Background(), event))

	require.Len(t, comms.created, 1)
	assert.Equal(t, "We received your AC Repair request", comms.created[0].Message)
}

func TestToggleRule(t *testing.T) {
	svc, _, ruleRepo := newAutomationFixture(domain.AutomationRule{
		ID:      "rule-1",
		Trigger: domain.TriggerStatusChange,
		Channel: domain.ChannelEmail,
	})

	rule, err := svc.ToggleRule(context.Background(), "rule-1", true)
	require.NoError(t, err)
	assert.True(t, rule.IsEnabled)
	assert.True(t, ruleRepo.rules[0].IsEnabled)

	_, err = svc.ToggleRule(context.Background(), "missing", true)
	assert.Error(t, err)
}

package worker

import (
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/service"
)

// StartAutomationWorker subscribes automation rule handlers to assignment
// events.
func StartAutomationWorker(dispatcher events.Dispatcher, automation *service.AutomationService) {
	if dispatcher == nil || automation == nil {
		return
	}
	dispatcher.Subscribe(events.EventAssignmentStatusChanged, automation.HandleStatusChanged)
	dispatcher.Subscribe(events.EventAssignmentCreated, automation.HandleAssignmentCreated)
}

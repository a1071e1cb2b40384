package domain

import (
	"fmt"
	"time"
)

// RuleTrigger enumerates the events an automation rule can react to.
type RuleTrigger string

const (
	TriggerStatusChange     RuleTrigger = "status_change"
	TriggerServiceCompleted RuleTrigger = "service_completed"
	TriggerServiceOnHold    RuleTrigger = "service_on_hold"
	TriggerNewService       RuleTrigger = "new_service"
)

// ParseRuleTrigger validates a trigger string.
func ParseRuleTrigger(s string) (RuleTrigger, error) {
	trigger := RuleTrigger(s)
	if !trigger.Valid() {
		return "", fmt.Errorf("unknown rule trigger: %q", s)
	}
	return trigger, nil
}

// Valid reports membership in the trigger enumeration.
func (t RuleTrigger) Valid() bool {
	switch t {
	case TriggerStatusChange, TriggerServiceCompleted, TriggerServiceOnHold, TriggerNewService:
		return true
	}
	return false
}

// AutomationRule logs a communication whenever a matching assignment event
// occurs. StatusValue narrows a status_change trigger to one target status;
// empty matches any change.
type AutomationRule struct {
	ID              string
	Name            string
	Trigger         RuleTrigger
	StatusValue     AssignmentStatus
	Channel         Channel
	SubjectTemplate string
	MessageTemplate string
	IsEnabled       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

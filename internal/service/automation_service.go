package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// AutomationService manages notification rules and reacts to assignment
// events by logging communications for matching rules.
type AutomationService struct {
	rules          repository.AutomationRuleRepository
	communications repository.CommunicationRepository
	assignments    repository.AssignmentRepository
	logger         *zap.Logger
}

// AutomationDependencies wires the service.
type AutomationDependencies struct {
	Rules          repository.AutomationRuleRepository
	Communications repository.CommunicationRepository
	Assignments    repository.AssignmentRepository
	Logger         *zap.Logger
}

// NewAutomationService constructs the service.
func NewAutomationService(deps AutomationDependencies) *AutomationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutomationService{
		rules:          deps.Rules,
		communications: deps.Communications,
		assignments:    deps.Assignments,
		logger:         logger,
	}
}

// RuleInput describes rule payload.
type RuleInput struct {
	Name            string
	Trigger         string
	StatusValue     string
	Channel         string
	SubjectTemplate string
	MessageTemplate string
	IsEnabled       *bool
}

// CreateRule stores a new automation rule.
func (s *AutomationService) CreateRule(ctx context.Context, input RuleInput) (*domain.AutomationRule, error) {
	rule, err := ruleFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// ListRules returns all rules.
func (s *AutomationService) ListRules(ctx context.Context) ([]domain.AutomationRule, error) {
	return s.rules.List(ctx)
}

// UpdateRule replaces a rule's fields.
func (s *AutomationService) UpdateRule(ctx context.Context, id string, input RuleInput) (*domain.AutomationRule, error) {
	existing, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("automation_rule", map[string]any{"id": id})
		}
		return nil, err
	}
	rule, err := ruleFromInput(input)
	if err != nil {
		return nil, err
	}
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule removes a rule.
func (s *AutomationService) DeleteRule(ctx context.Context, id string) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("automation_rule", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// ToggleRule flips a rule's enabled flag.
func (s *AutomationService) ToggleRule(ctx context.Context, id string, enabled bool) (*domain.AutomationRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("automation_rule", map[string]any{"id": id})
		}
		return nil, err
	}
	rule.IsEnabled = enabled
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// HandleStatusChanged runs rules triggered by a status transition.
func (s *AutomationService) HandleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignmentStatusChangedPayload)
	if !ok {
		return nil
	}
	return s.runRules(ctx, event, func(rule domain.AutomationRule) bool {
		switch rule.Trigger {
		case domain.TriggerStatusChange:
			return rule.StatusValue == "" || rule.StatusValue == payload.NewStatus
		case domain.TriggerServiceCompleted:
			return payload.NewStatus == domain.StatusCompleted
		case domain.TriggerServiceOnHold:
			return payload.NewStatus == domain.StatusOnHold
		default:
			return false
		}
	})
}

// HandleAssignmentCreated runs rules triggered by a new assignment.
func (s *AutomationService) HandleAssignmentCreated(ctx context.Context, event events.Event) error {
	return s.runRules(ctx, event, func(rule domain.AutomationRule) bool {
		return rule.Trigger == domain.TriggerNewService
	})
}

func (s *AutomationService) runRules(ctx context.Context, event events.Event, matches func(domain.AutomationRule) bool) error {
	if event.CustomerID == "" {
		return nil
	}
	rules, err := s.rules.ListEnabled(ctx)
	if err != nil {
		s.logger.Error("failed to load automation rules", zap.Error(err))
		return err
	}
	var serviceName string
	if event.AssignmentID != "" {
		if assignment, err := s.assignments.GetByID(ctx, event.AssignmentID); err == nil {
			serviceName = assignment.ServiceName
		}
	}
	for _, rule := range rules {
		if !matches(rule) {
			continue
		}
		customerID := event.CustomerID
		comm := &domain.Communication{
			CustomerID: &customerID,
			Channel:    rule.Channel,
			Subject:    renderTemplate(rule.SubjectTemplate, serviceName),
			Message:    renderTemplate(rule.MessageTemplate, serviceName),
			Status:     "sent",
		}
		if err := s.communications.Create(ctx, comm); err != nil {
			s.logger.Error("automation rule failed to log communication",
				zap.String("rule_id", rule.ID),
				zap.String("customer_id", customerID),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("automation rule fired",
			zap.String("rule_id", rule.ID),
			zap.String("trigger", string(rule.Trigger)),
			zap.String("customer_id", customerID),
		)
	}
	return nil
}

// renderTemplate substitutes the {{service_name}} placeholder.
func renderTemplate(template, serviceName string) string {
	return strings.ReplaceAll(template, "{{service_name}}", serviceName)
}

func ruleFromInput(input RuleInput) (*domain.AutomationRule, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	trigger, err := domain.ParseRuleTrigger(input.Trigger)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid trigger", map[string]any{"trigger": input.Trigger})
	}
	channel, err := domain.ParseChannel(input.Channel)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid channel", map[string]any{"channel": input.Channel})
	}
	var statusValue domain.AssignmentStatus
	if input.StatusValue != "" {
		statusValue, err = domain.ParseAssignmentStatus(input.StatusValue)
		if err != nil {
			return nil, apperrors.NewInvalidStatus(input.StatusValue)
		}
	}
	enabled := true
	if input.IsEnabled != nil {
		enabled = *input.IsEnabled
	}
	return &domain.AutomationRule{
		Name:            strings.TrimSpace(input.Name),
		Trigger:         trigger,
		StatusValue:     statusValue,
		Channel:         channel,
		SubjectTemplate: input.SubjectTemplate,
		MessageTemplate: input.MessageTemplate,
		IsEnabled:       enabled,
	}, nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// AutomationHandler manages notification rule endpoints.
type AutomationHandler struct {
	automation *service.AutomationService
}

// NewAutomationHandler constructs handler.
func NewAutomationHandler(automation *service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automation: automation}
}

// Create POST /automation-rules.
func (h *AutomationHandler) Create(c *fiber.Ctx) error {
	input, err := ruleInput(c)
	if err != nil {
		return err
	}
	rule, err := h.automation.CreateRule(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ruleResponse(rule)})
}

// List GET /automation-rules.
func (h *AutomationHandler) List(c *fiber.Ctx) error {
	rules, err := h.automation.ListRules(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AutomationRuleResponse, 0, len(rules))
	for i := range rules {
		items = append(items, ruleResponse(&rules[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /automation-rules/:id.
func (h *AutomationHandler) Update(c *fiber.Ctx) error {
	input, err := ruleInput(c)
	if err != nil {
		return err
	}
	rule, err := h.automation.UpdateRule(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ruleResponse(rule)})
}

// Toggle PATCH /automation-rules/:id/toggle.
func (h *AutomationHandler) Toggle(c *fiber.Ctx) error {
	var req dto.ToggleRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	rule, err := h.automation.ToggleRule(c.UserContext(), c.Params("id"), req.IsEnabled)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ruleResponse(rule)})
}

// Delete DELETE /automation-rules/:id.
func (h *AutomationHandler) Delete(c *fiber.Ctx) error {
	if err := h.automation.DeleteRule(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ruleInput(c *fiber.Ctx) (service.RuleInput, error) {
	var req dto.AutomationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return service.RuleInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.RuleInput{
		Name:            req.Name,
		Trigger:         req.Trigger,
		StatusValue:     req.StatusValue,
		Channel:         req.Channel,
		SubjectTemplate: req.SubjectTemplate,
		MessageTemplate: req.MessageTemplate,
		IsEnabled:       req.IsEnabled,
	}, nil
}

func ruleResponse(rule *domain.AutomationRule) dto.AutomationRuleResponse {
	return dto.AutomationRuleResponse{
		ID:              rule.ID,
		Name:            rule.Name,
		Trigger:         rule.Trigger,
		StatusValue:     rule.StatusValue,
		Channel:         rule.Channel,
		SubjectTemplate: rule.SubjectTemplate,
		MessageTemplate: rule.MessageTemplate,
		IsEnabled:       rule.IsEnabled,
		CreatedAt:       rule.CreatedAt,
		UpdatedAt:       rule.UpdatedAt,
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// CommunicationsHandler manages the outbound message log and templates.
type CommunicationsHandler struct {
	communications *service.CommunicationService
}

// NewCommunicationsHandler constructs handler.
func NewCommunicationsHandler(communications *service.CommunicationService) *CommunicationsHandler {
	return &CommunicationsHandler{communications: communications}
}

// Send POST /communications.
func (h *CommunicationsHandler) Send(c *fiber.Ctx) error {
	var req dto.SendCommunicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	logged, err := h.communications.Send(c.UserContext(), service.SendInput{
		Audience:    req.Audience,
		CustomerIDs: req.CustomerIDs,
		GroupID:     req.GroupID,
		Channel:     req.Channel,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return err
	}
	items := make([]dto.CommunicationResponse, 0, len(logged))
	for i := range logged {
		items = append(items, communicationResponse(&logged[i]))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": items})
}

// List GET /communications.
func (h *CommunicationsHandler) List(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), 50)
	comms, err := h.communications.History(c.UserContext(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.CommunicationResponse, 0, len(comms))
	for i := range comms {
		items = append(items, communicationResponse(&comms[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTemplate POST /templates.
func (h *CommunicationsHandler) CreateTemplate(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	template, err := h.communications.CreateTemplate(c.UserContext(), service.TemplateInput{
		Name:    req.Name,
		Subject: req.Subject,
		Message: req.Message,
		Channel: req.Channel,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": templateResponse(template)})
}

// ListTemplates GET /templates.
func (h *CommunicationsHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.communications.ListTemplates(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		items = append(items, templateResponse(&templates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteTemplate DELETE /templates/:id.
func (h *CommunicationsHandler) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.communications.DeleteTemplate(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func communicationResponse(comm *domain.Communication) dto.CommunicationResponse {
	return dto.CommunicationResponse{
		ID:          comm.ID,
		CustomerID:  comm.CustomerID,
		CustomerIDs: comm.CustomerIDs,
		Channel:     comm.Channel,
		Subject:     comm.Subject,
		Message:     comm.Message,
		Status:      comm.Status,
		SentToGroup: comm.SentToGroup,
		IsBulk:      comm.IsBulk,
		CreatedAt:   comm.CreatedAt,
	}
}

func templateResponse(template *domain.MessageTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:        template.ID,
		Name:      template.Name,
		Subject:   template.Subject,
		Message:   template.Message,
		Channel:   template.Channel,
		CreatedAt: template.CreatedAt,
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// CatalogHandler manages service catalog and customer group endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreateService POST /services.
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	input, err := serviceInput(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.CreateService(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": serviceResponse(svc)})
}

// ListServices GET /services.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalog.ListServices(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, serviceResponse(&services[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateService PUT /services/:id.
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	input, err := serviceInput(c)
	if err != nil {
		return err
	}
	svc, err := h.catalog.UpdateService(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(svc)})
}

// DeleteService DELETE /services/:id.
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	if err := h.catalog.DeleteService(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateGroup POST /groups.
func (h *CatalogHandler) CreateGroup(c *fiber.Ctx) error {
	input, err := groupInput(c)
	if err != nil {
		return err
	}
	group, err := h.catalog.CreateGroup(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": groupResponse(group)})
}

// ListGroups GET /groups.
func (h *CatalogHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.catalog.ListGroups(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, groupResponse(&groups[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateGroup PUT /groups/:id.
func (h *CatalogHandler) UpdateGroup(c *fiber.Ctx) error {
	input, err := groupInput(c)
	if err != nil {
		return err
	}
	group, err := h.catalog.UpdateGroup(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": groupResponse(group)})
}

// DeleteGroup DELETE /groups/:id.
func (h *CatalogHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.catalog.DeleteGroup(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func serviceInput(c *fiber.Ctx) (service.ServiceInput, error) {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ServiceInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Icon:            req.Icon,
		IsActive:        req.IsActive,
		DefaultStatuses: req.DefaultStatuses,
	}, nil
}

func groupInput(c *fiber.Ctx) (service.GroupInput, error) {
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return service.GroupInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}, nil
}

func serviceResponse(svc *domain.Service) dto.ServiceResponse {
	statuses := svc.DefaultStatuses
	if statuses == nil {
		statuses = []domain.AssignmentStatus{}
	}
	return dto.ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		Description:     svc.Description,
		Icon:            svc.Icon,
		IsActive:        svc.IsActive,
		DefaultStatuses: statuses,
		CreatedAt:       svc.CreatedAt,
	}
}

func groupResponse(group *domain.CustomerGroup) dto.GroupResponse {
	return dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Color:       group.Color,
		CreatedAt:   group.CreatedAt,
	}
}

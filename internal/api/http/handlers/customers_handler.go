package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	customers      *service.CustomerService
	communications *service.CommunicationService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers *service.CustomerService, communications *service.CommunicationService) *CustomersHandler {
	return &CustomersHandler{customers: customers, communications: communications}
}

// Create POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	input, err := customerInput(c)
	if err != nil {
		return err
	}
	customer, err := h.customers.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// List GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	filter := service.CustomerFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.CustomerStatus(statusStr)
		filter.Status = &status
	}
	if groupID := c.Query("group_id"); groupID != "" {
		filter.GroupID = &groupID
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	customers, err := h.customers.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customer, err := h.customers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	input, err := customerInput(c)
	if err != nil {
		return err
	}
	customer, err := h.customers.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	if err := h.customers.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Communications GET /customers/:id/communications, including bulk sends
// that contained the customer.
func (h *CustomersHandler) Communications(c *fiber.Ctx) error {
	comms, err := h.communications.HistoryForCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommunicationResponse, 0, len(comms))
	for i := range comms {
		items = append(items, communicationResponse(&comms[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func customerInput(c *fiber.Ctx) (service.CustomerInput, error) {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return service.CustomerInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.CustomerInput{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		WhatsappNumber: req.WhatsappNumber,
		Address:        req.Address,
		Notes:          req.Notes,
		Groups:         req.Groups,
		UserEmail:      req.UserEmail,
	}
	if req.Status != "" {
		status := domain.CustomerStatus(req.Status)
		if status != domain.CustomerStatusActive && status != domain.CustomerStatusInactive {
			return service.CustomerInput{}, apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
		}
		input.Status = status
	}
	return input, nil
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:             customer.ID,
		FullName:       customer.FullName,
		PhoneNumber:    customer.PhoneNumber,
		Email:          customer.Email,
		WhatsappNumber: customer.WhatsappNumber,
		Address:        customer.Address,
		Notes:          customer.Notes,
		Status:         customer.Status,
		Groups:         customer.Groups,
		UserEmail:      customer.UserEmail,
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}
}

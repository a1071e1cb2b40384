package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// SettingsHandler manages business settings and the user directory.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get GET /settings.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

// Update PUT /settings.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.settings.Update(c.UserContext(), service.SettingsInput{
		BusinessName:         req.BusinessName,
		PhoneNumber:          req.PhoneNumber,
		Email:                req.Email,
		Address:              req.Address,
		NotifyOnStatusChange: req.NotifyOnStatusChange,
		NotifyOnCompletion:   req.NotifyOnCompletion,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

// ListUsers GET /users.
func (h *SettingsHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.settings.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// InviteUser POST /users/invite.
func (h *SettingsHandler) InviteUser(c *fiber.Ctx) error {
	var req dto.InviteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.settings.InviteUser(c.UserContext(), service.InviteInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

func settingsResponse(settings *domain.BusinessSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		BusinessName:         settings.BusinessName,
		PhoneNumber:          settings.PhoneNumber,
		Email:                settings.Email,
		Address:              settings.Address,
		NotifyOnStatusChange: settings.NotifyOnStatusChange,
		NotifyOnCompletion:   settings.NotifyOnCompletion,
		UpdatedAt:            settings.UpdatedAt,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

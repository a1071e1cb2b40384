package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/auth"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// PortalHandler serves the customer-facing progress view. Portal routes
// require a signed-in identity.
type PortalHandler struct {
	portal *service.PortalService
}

// NewPortalHandler constructs handler.
func NewPortalHandler(portal *service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// Me GET /portal/me.
func (h *PortalHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("identity required")
	}
	view, err := h.portal.ViewForEmail(c.UserContext(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

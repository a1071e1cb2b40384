package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zayanservices/crm-service/internal/api/dto"
	"github.com/zayanservices/crm-service/internal/auth"
	"github.com/zayanservices/crm-service/internal/cache"
	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/service"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// AssignmentsHandler manages service assignment endpoints.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
	lifecycle   *service.LifecycleService
	views       *cache.ViewCache
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignments *service.AssignmentService, lifecycle *service.LifecycleService, views *cache.ViewCache) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments, lifecycle: lifecycle, views: views}
}

// Create POST /assignments.
func (h *AssignmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AssignmentCreateInput{
		CustomerID:             req.CustomerID,
		ServiceID:              req.ServiceID,
		ServiceName:            req.ServiceName,
		AssignedTechnician:     req.AssignedTechnician,
		Notes:                  req.Notes,
		StartDate:              parseDate(req.StartDate),
		ExpectedCompletionDate: parseDate(req.ExpectedCompletionDate),
	}
	if req.Status != "" {
		status, err := domain.ParseAssignmentStatus(req.Status)
		if err != nil {
			return apperrors.NewInvalidStatus(req.Status)
		}
		input.Status = status
	}
	if req.Priority != "" {
		priority, err := domain.ParseAssignmentPriority(req.Priority)
		if err != nil {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
		}
		input.Priority = priority
	}

	assignment, err := h.assignments.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// List GET /assignments.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	filter := parseAssignmentQuery(c)
	assignments, err := h.assignments.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, assignmentResponse(&assignments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /assignments/:id. The detail view is cached; lifecycle writes
// invalidate it.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	key := cache.AssignmentKey(id)
	if h.views != nil {
		var cached dto.AssignmentResponse
		if hit, err := h.views.GetJSON(c.UserContext(), key, &cached); err == nil && hit {
			return c.JSON(fiber.Map{"data": cached})
		}
	}
	assignment, err := h.assignments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	response := assignmentResponse(assignment)
	if h.views != nil {
		h.views.SetJSON(c.UserContext(), key, response)
	}
	return c.JSON(fiber.Map{"data": response})
}

// Update PATCH /assignments/:id. Status is rejected here; use ChangeStatus.
func (h *AssignmentsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AssignmentUpdateInput{
		ServiceID:              req.ServiceID,
		ServiceName:            req.ServiceName,
		AssignedTechnician:     req.AssignedTechnician,
		Notes:                  req.Notes,
		StartDate:              parseDate(req.StartDate),
		ExpectedCompletionDate: parseDate(req.ExpectedCompletionDate),
	}
	if req.Priority != nil {
		priority, err := domain.ParseAssignmentPriority(*req.Priority)
		if err != nil {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": *req.Priority})
		}
		input.Priority = &priority
	}

	assignment, err := h.assignments.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	if h.views != nil {
		h.views.InvalidateAssignmentViews(c.UserContext(), assignment.ID, assignment.CustomerID)
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// ChangeStatus POST /assignments/:id/status. The acting identity is stamped
// on the audit entry; anonymous callers record the sentinel actor.
func (h *AssignmentsHandler) ChangeStatus(c *fiber.Ctx) error {
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseAssignmentStatus(req.Status)
	if err != nil {
		return apperrors.NewInvalidStatus(req.Status)
	}

	assignment, entry, err := h.lifecycle.ApplyStatusChange(c.UserContext(), c.Params("id"), status, req.Note, auth.ActorEmail(c))
	if err != nil {
		return err
	}
	response := dto.ChangeStatusResponse{Assignment: assignmentResponse(assignment)}
	if entry != nil {
		historyEntry := historyResponse(*entry)
		response.History = &historyEntry
	}
	return c.JSON(fiber.Map{"data": response})
}

// History GET /assignments/:id/history.
func (h *AssignmentsHandler) History(c *fiber.Ctx) error {
	entries, err := h.lifecycle.HistoryForAssignment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.StatusHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyResponse(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Progress GET /assignments/:id/progress.
func (h *AssignmentsHandler) Progress(c *fiber.Ctx) error {
	assignment, err := h.assignments.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": service.RenderProgress(*assignment)})
}

// Delete DELETE /assignments/:id.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	assignment, err := h.assignments.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if err := h.assignments.Delete(c.UserContext(), id); err != nil {
		return err
	}
	if h.views != nil {
		h.views.InvalidateAssignmentViews(c.UserContext(), assignment.ID, assignment.CustomerID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseAssignmentQuery(c *fiber.Ctx) service.AssignmentFilter {
	filter := service.AssignmentFilter{}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		filter.ServiceID = &serviceID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.AssignmentStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.AssignmentPriority(strings.TrimSpace(part)))
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// parseDate accepts calendar dates and full RFC3339 timestamps.
func parseDate(val *string) *time.Time {
	if val == nil || *val == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", *val); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, *val); err == nil {
		return &t
	}
	return nil
}

func assignmentResponse(assignment *domain.ServiceAssignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:                     assignment.ID,
		CustomerID:             assignment.CustomerID,
		ServiceID:              assignment.ServiceID,
		ServiceName:            assignment.ServiceName,
		Status:                 assignment.Status,
		Priority:               assignment.Priority,
		StartDate:              assignment.StartDate,
		ExpectedCompletionDate: assignment.ExpectedCompletionDate,
		ActualCompletionDate:   assignment.ActualCompletionDate,
		AssignedTechnician:     assignment.AssignedTechnician,
		Notes:                  assignment.Notes,
		CreatedAt:              assignment.CreatedAt,
		UpdatedAt:              assignment.UpdatedAt,
	}
}

func historyResponse(entry domain.StatusHistory) dto.StatusHistoryResponse {
	return dto.StatusHistoryResponse{
		ID:             entry.ID,
		AssignmentID:   entry.AssignmentID,
		CustomerID:     entry.CustomerID,
		PreviousStatus: entry.PreviousStatus,
		NewStatus:      entry.NewStatus,
		ChangedBy:      entry.ChangedBy,
		Notes:          entry.Notes,
		CreatedAt:      entry.CreatedAt,
	}
}

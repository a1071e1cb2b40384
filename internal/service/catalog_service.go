package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// CatalogService manages the offered-service catalog and customer groups.
type CatalogService struct {
	services repository.ServiceRepository
	groups   repository.GroupRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(services repository.ServiceRepository, groups repository.GroupRepository) *CatalogService {
	return &CatalogService{services: services, groups: groups}
}

// ServiceInput describes catalog entry payload.
type ServiceInput struct {
	Name            string
	Description     string
	Icon            string
	IsActive        *bool
	DefaultStatuses []string
}

// CreateService adds a catalog entry.
func (s *CatalogService) CreateService(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	svc, err := serviceFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService fetches one catalog entry.
func (s *CatalogService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return nil, err
	}
	return svc, nil
}

// ListServices returns the full catalog.
func (s *CatalogService) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

// UpdateService replaces a catalog entry's editable fields.
func (s *CatalogService) UpdateService(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	existing, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc, err := serviceFromInput(input)
	if err != nil {
		return nil, err
	}
	svc.ID = existing.ID
	svc.CreatedAt = existing.CreatedAt
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a catalog entry.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// GroupInput describes customer group payload.
type GroupInput struct {
	Name        string
	Description string
	Color       string
}

// CreateGroup adds a customer group.
func (s *CatalogService) CreateGroup(ctx context.Context, input GroupInput) (*domain.CustomerGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	group := &domain.CustomerGroup{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns all customer groups.
func (s *CatalogService) ListGroups(ctx context.Context) ([]domain.CustomerGroup, error) {
	return s.groups.List(ctx)
}

// UpdateGroup replaces a group's fields.
func (s *CatalogService) UpdateGroup(ctx context.Context, id string, input GroupInput) (*domain.CustomerGroup, error) {
	existing, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer_group", map[string]any{"id": id})
		}
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.Color = input.Color
	if err := s.groups.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteGroup removes a group.
func (s *CatalogService) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer_group", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func serviceFromInput(input ServiceInput) (*domain.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	statuses := make([]domain.AssignmentStatus, 0, len(input.DefaultStatuses))
	for _, raw := range input.DefaultStatuses {
		status, err := domain.ParseAssignmentStatus(raw)
		if err != nil {
			return nil, apperrors.NewInvalidStatus(raw)
		}
		statuses = append(statuses, status)
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return &domain.Service{
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Icon:            input.Icon,
		IsActive:        active,
		DefaultStatuses: statuses,
	}, nil
}

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

// CustomerService coordinates customer CRUD.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput describes create/update payload.
type CustomerInput struct {
	FullName       string
	PhoneNumber    string
	Email          string
	WhatsappNumber string
	Address        string
	Notes          string
	Status         domain.CustomerStatus
	Groups         []string
	UserEmail      string
}

// CustomerFilter describes listing filters.
type CustomerFilter struct {
	Status     *domain.CustomerStatus
	GroupID    *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// Create registers a customer.
func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}
	customer := customerFromInput(input)
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get fetches one customer.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	return customer, nil
}

// List returns customers matching the filter.
func (s *CustomerService) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error) {
	return s.customers.ListWithFilter(ctx, repository.CustomerFilter{
		Status:     filter.Status,
		GroupID:    filter.GroupID,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update replaces a customer's editable fields.
func (s *CustomerService) Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := customerFromInput(input)
	updated.ID = customer.ID
	updated.CreatedAt = customer.CreatedAt
	if err := s.customers.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func customerFromInput(input CustomerInput) *domain.Customer {
	status := input.Status
	if status == "" {
		status = domain.CustomerStatusActive
	}
	groups := input.Groups
	if groups == nil {
		groups = []string{}
	}
	return &domain.Customer{
		FullName:       strings.TrimSpace(input.FullName),
		PhoneNumber:    strings.TrimSpace(input.PhoneNumber),
		Email:          strings.TrimSpace(input.Email),
		WhatsappNumber: strings.TrimSpace(input.WhatsappNumber),
		Address:        strings.TrimSpace(input.Address),
		Notes:          input.Notes,
		Status:         status,
		Groups:         groups,
		UserEmail:      strings.ToLower(strings.TrimSpace(input.UserEmail)),
	}
}

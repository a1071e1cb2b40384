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

// SettingsService manages the business profile singleton and the dashboard
// user directory.
type SettingsService struct {
	settings repository.SettingsRepository
	users    repository.UserRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository, users repository.UserRepository) *SettingsService {
	return &SettingsService{settings: settings, users: users}
}

// Get returns the business settings, creating defaults on first read.
func (s *SettingsService) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := &domain.BusinessSettings{
				NotifyOnStatusChange: true,
				NotifyOnCompletion:   true,
			}
			if err := s.settings.Upsert(ctx, defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// SettingsInput describes the business profile payload.
type SettingsInput struct {
	BusinessName         string
	PhoneNumber          string
	Email                string
	Address              string
	NotifyOnStatusChange bool
	NotifyOnCompletion   bool
}

// Update replaces the business settings.
func (s *SettingsService) Update(ctx context.Context, input SettingsInput) (*domain.BusinessSettings, error) {
	existing, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	existing.BusinessName = strings.TrimSpace(input.BusinessName)
	existing.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	existing.Email = strings.TrimSpace(input.Email)
	existing.Address = strings.TrimSpace(input.Address)
	existing.NotifyOnStatusChange = input.NotifyOnStatusChange
	existing.NotifyOnCompletion = input.NotifyOnCompletion
	if err := s.settings.Upsert(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ListUsers returns the dashboard user directory.
func (s *SettingsService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// InviteInput describes a user invitation.
type InviteInput struct {
	Email    string
	FullName string
	Role     string
}

// InviteUser records an invited dashboard user. Credentials are handled by
// the external identity provider; the record starts in "invited" state.
func (s *SettingsService) InviteUser(ctx context.Context, input InviteInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	role := domain.UserRole(input.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	user := &domain.User{
		Email:    email,
		FullName: strings.TrimSpace(input.FullName),
		Role:     role,
		Status:   "invited",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package dto

import (
	"time"

	"github.com/zayanservices/crm-service/internal/domain"
)

// SettingsRequest business profile payload.
type SettingsRequest struct {
	BusinessName         string `json:"business_name"`
	PhoneNumber          string `json:"phone_number"`
	Email                string `json:"email"`
	Address              string `json:"address"`
	NotifyOnStatusChange bool   `json:"notify_on_status_change"`
	NotifyOnCompletion   bool   `json:"notify_on_completion"`
}

// SettingsResponse business profile view.
type SettingsResponse struct {
	BusinessName         string    `json:"business_name"`
	PhoneNumber          string    `json:"phone_number,omitempty"`
	Email                string    `json:"email,omitempty"`
	Address              string    `json:"address,omitempty"`
	NotifyOnStatusChange bool      `json:"notify_on_status_change"`
	NotifyOnCompletion   bool      `json:"notify_on_completion"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// InviteUserRequest payload.
type InviteUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// UserResponse dashboard user view.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name,omitempty"`
	Role      domain.UserRole `json:"role"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

package dto

import (
	"time"

	"github.com/zayanservices/crm-service/internal/domain"
)

// CustomerRequest payload for create and update.
type CustomerRequest struct {
	FullName       string   `json:"full_name"`
	PhoneNumber    string   `json:"phone_number"`
	Email          string   `json:"email"`
	WhatsappNumber string   `json:"whatsapp_number"`
	Address        string   `json:"address"`
	Notes          string   `json:"notes"`
	Status         string   `json:"status"`
	Groups         []string `json:"groups"`
	UserEmail      string   `json:"user_email"`
}

// CustomerResponse full customer view.
type CustomerResponse struct {
	ID             string                `json:"id"`
	FullName       string                `json:"full_name"`
	PhoneNumber    string                `json:"phone_number,omitempty"`
	Email          string                `json:"email,omitempty"`
	WhatsappNumber string                `json:"whatsapp_number,omitempty"`
	Address        string                `json:"address,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Status         domain.CustomerStatus `json:"status"`
	Groups         []string              `json:"groups"`
	UserEmail      string                `json:"user_email,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// GroupRequest payload.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GroupResponse customer group view.
type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceRequest payload for catalog entries.
type ServiceRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Icon            string   `json:"icon"`
	IsActive        *bool    `json:"is_active"`
	DefaultStatuses []string `json:"default_statuses"`
}

// ServiceResponse catalog entry view.
type ServiceResponse struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description,omitempty"`
	Icon            string                    `json:"icon,omitempty"`
	IsActive        bool                      `json:"is_active"`
	DefaultStatuses []domain.AssignmentStatus `json:"default_statuses"`
	CreatedAt       time.Time                 `json:"created_at"`
}

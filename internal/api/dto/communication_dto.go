package dto

import (
	"time"

	"github.com/zayanservices/crm-service/internal/domain"
)

// SendCommunicationRequest payload.
type SendCommunicationRequest struct {
	Audience    string   `json:"audience"`
	CustomerIDs []string `json:"customer_ids"`
	GroupID     string   `json:"group_id"`
	Channel     string   `json:"channel"`
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
}

// CommunicationResponse one logged send.
type CommunicationResponse struct {
	ID          string         `json:"id"`
	CustomerID  *string        `json:"customer_id,omitempty"`
	CustomerIDs []string       `json:"customer_ids,omitempty"`
	Channel     domain.Channel `json:"channel"`
	Subject     string         `json:"subject,omitempty"`
	Message     string         `json:"message"`
	Status      string         `json:"status"`
	SentToGroup *string        `json:"sent_to_group,omitempty"`
	IsBulk      bool           `json:"is_bulk"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TemplateRequest payload.
type TemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Channel string `json:"channel"`
}

// TemplateResponse compose preset view.
type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// AutomationRuleRequest payload.
type AutomationRuleRequest struct {
	Name            string `json:"name"`
	Trigger         string `json:"trigger"`
	StatusValue     string `json:"status_value"`
	Channel         string `json:"channel"`
	SubjectTemplate string `json:"subject_template"`
	MessageTemplate string `json:"message_template"`
	IsEnabled       *bool  `json:"is_enabled"`
}

// ToggleRuleRequest payload.
type ToggleRuleRequest struct {
	IsEnabled bool `json:"is_enabled"`
}

// AutomationRuleResponse rule view.
type AutomationRuleResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Trigger         domain.RuleTrigger      `json:"trigger"`
	StatusValue     domain.AssignmentStatus `json:"status_value,omitempty"`
	Channel         domain.Channel          `json:"channel"`
	SubjectTemplate string                  `json:"subject_template,omitempty"`
	MessageTemplate string                  `json:"message_template"`
	IsEnabled       bool                    `json:"is_enabled"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

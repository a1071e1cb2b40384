package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/repository"
	apperrors "github.com/zayanservices/crm-service/pkg/util"
)

// CommunicationService records outbound messages and manages compose presets.
// It records intent only; actual delivery is handled outside this system.
type CommunicationService struct {
	communications repository.CommunicationRepository
	customers      repository.CustomerRepository
	templates      repository.TemplateRepository
	dispatcher     events.Dispatcher
	logger         *zap.Logger
}

// CommunicationDependencies wires the service.
type CommunicationDependencies struct {
	Communications repository.CommunicationRepository
	Customers      repository.CustomerRepository
	Templates      repository.TemplateRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewCommunicationService constructs the service.
func NewCommunicationService(deps CommunicationDependencies) *CommunicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommunicationService{
		communications: deps.Communications,
		customers:      deps.Customers,
		templates:      deps.Templates,
		dispatcher:     deps.Dispatcher,
		logger:         logger,
	}
}

// SendInput describes a compose request. Audience selects recipients:
// "individual" logs one row per customer id, "group" and "all" log a
// single bulk row.
type SendInput struct {
	Audience    string
	CustomerIDs []string
	GroupID     string
	Channel     string
	Subject     string
	Message     string
}

// Send logs the requested communications and returns the created rows.
func (s *CommunicationService) Send(ctx context.Context, input SendInput) ([]domain.Communication, error) {
	channel, err := domain.ParseChannel(input.Channel)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid channel", map[string]any{"channel": input.Channel})
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	switch input.Audience {
	case "individual":
		return s.sendIndividual(ctx, channel, input)
	case "group":
		return s.sendGroup(ctx, channel, input)
	case "all":
		return s.sendAll(ctx, channel, input)
	default:
		return nil, apperrors.NewValidationError("invalid audience", map[string]any{"audience": input.Audience})
	}
}

func (s *CommunicationService) sendIndividual(ctx context.Context, channel domain.Channel, input SendInput) ([]domain.Communication, error) {
	if len(input.CustomerIDs) == 0 {
		return nil, apperrors.NewValidationError("customer_ids required", nil)
	}
	logged := make([]domain.Communication, 0, len(input.CustomerIDs))
	for _, customerID := range input.CustomerIDs {
		id := customerID
		comm := &domain.Communication{
			CustomerID: &id,
			Channel:    channel,
			Subject:    input.Subject,
			Message:    input.Message,
			Status:     "sent",
		}
		if err := s.communications.Create(ctx, comm); err != nil {
			return logged, err
		}
		logged = append(logged, *comm)
		s.publishLogged(ctx, *comm, 1)
	}
	return logged, nil
}

func (s *CommunicationService) sendGroup(ctx context.Context, channel domain.Channel, input SendInput) ([]domain.Communication, error) {
	if strings.TrimSpace(input.GroupID) == "" {
		return nil, apperrors.NewValidationError("group_id required", nil)
	}
	groupID := input.GroupID
	members, err := s.customers.ListWithFilter(ctx, repository.CustomerFilter{GroupID: &groupID})
	if err != nil {
		return nil, err
	}
	ids := customerIDs(members)
	comm := &domain.Communication{
		CustomerIDs: ids,
		Channel:     channel,
		Subject:     input.Subject,
		Message:     input.Message,
		Status:      "sent",
		SentToGroup: &groupID,
		IsBulk:      true,
	}
	if err := s.communications.Create(ctx, comm); err != nil {
		return nil, err
	}
	s.publishLogged(ctx, *comm, len(ids))
	return []domain.Communication{*comm}, nil
}

func (s *CommunicationService) sendAll(ctx context.Context, channel domain.Channel, input SendInput) ([]domain.Communication, error) {
	active := domain.CustomerStatusActive
	customers, err := s.customers.ListWithFilter(ctx, repository.CustomerFilter{Status: &active})
	if err != nil {
		return nil, err
	}
	ids := customerIDs(customers)
	comm := &domain.Communication{
		CustomerIDs: ids,
		Channel:     channel,
		Subject:     input.Subject,
		Message:     input.Message,
		Status:      "sent",
		IsBulk:      true,
	}
	if err := s.communications.Create(ctx, comm); err != nil {
		return nil, err
	}
	s.publishLogged(ctx, *comm, len(ids))
	return []domain.Communication{*comm}, nil
}

// History returns recent communications, newest first.
func (s *CommunicationService) History(ctx context.Context, limit int) ([]domain.Communication, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.communications.List(ctx, limit)
}

// HistoryForCustomer returns communications addressed to one customer,
// including bulk sends that contained them.
func (s *CommunicationService) HistoryForCustomer(ctx context.Context, customerID string) ([]domain.Communication, error) {
	return s.communications.ListByCustomer(ctx, customerID)
}

// TemplateInput describes a compose preset.
type TemplateInput struct {
	Name    string
	Subject string
	Message string
	Channel string
}

// CreateTemplate stores a compose preset. Channel "all" is accepted in
// addition to the concrete channels.
func (s *CommunicationService) CreateTemplate(ctx context.Context, input TemplateInput) (*domain.MessageTemplate, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Channel != "all" {
		if _, err := domain.ParseChannel(input.Channel); err != nil {
			return nil, apperrors.NewValidationError("invalid channel", map[string]any{"channel": input.Channel})
		}
	}
	template := &domain.MessageTemplate{
		Name:    strings.TrimSpace(input.Name),
		Subject: input.Subject,
		Message: input.Message,
		Channel: input.Channel,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// ListTemplates returns all presets.
func (s *CommunicationService) ListTemplates(ctx context.Context) ([]domain.MessageTemplate, error) {
	return s.templates.List(ctx)
}

// DeleteTemplate removes a preset.
func (s *CommunicationService) DeleteTemplate(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

func (s *CommunicationService) publishLogged(ctx context.Context, comm domain.Communication, recipients int) {
	if s.dispatcher == nil {
		return
	}
	customerID := ""
	if comm.CustomerID != nil {
		customerID = *comm.CustomerID
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventCommunicationLogged,
		CustomerID: customerID,
		Timestamp:  time.Now().UTC(),
		Payload: events.CommunicationLoggedPayload{
			Channel:    comm.Channel,
			IsBulk:     comm.IsBulk,
			Recipients: recipients,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish communication event", zap.Error(err))
	}
}

func customerIDs(customers []domain.Customer) []string {
	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	return ids
}

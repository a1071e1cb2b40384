package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zayanservices/crm-service/internal/domain"
	"github.com/zayanservices/crm-service/internal/repository"
)

type fakeAssignmentRepo struct {
	byID        map[string]*domain.ServiceAssignment
	updateCalls int
	updateErr   error
}

func newFakeAssignmentRepo(assignments ...*domain.ServiceAssignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{byID: map[string]*domain.ServiceAssignment{}}
	for _, a := range assignments {
		repo.byID[a.ID] = a
	}
	return repo
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.ServiceAssignment) error {
	if assignment.ID == "" {
		assignment.ID = fmt.Sprintf("assignment-%d", len(r.byID)+1)
	}
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	r.byID[assignment.ID] = assignment
	return nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, assignment *domain.ServiceAssignment) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[assignment.ID]; !ok {
		return pgx.ErrNoRows
	}
	assignment.UpdatedAt = time.Now()
	r.byID[assignment.ID] = assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*domain.ServiceAssignment, error) {
	assignment, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *assignment
	return &copied, nil
}

func (r *fakeAssignmentRepo) ListWithFilter(_ context.Context, filter repository.AssignmentFilter) ([]domain.ServiceAssignment, error) {
	var out []domain.ServiceAssignment
	for _, assignment := range r.byID {
		if filter.CustomerID != nil && assignment.CustomerID != *filter.CustomerID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, assignment.Status) {
			continue
		}
		out = append(out, *assignment)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) CountWithFilter(_ context.Context, filter repository.AssignmentFilter) (int, error) {
	count := 0
	for _, assignment := range r.byID {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, assignment.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, assignment.Priority) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeAssignmentRepo) CountByService(_ context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, assignment := range r.byID {
		if assignment.ServiceID == "" {
			continue
		}
		counts[assignment.ServiceID]++
	}
	return counts, nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func containsStatus(statuses []domain.AssignmentStatus, status domain.AssignmentStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsPriority(priorities []domain.AssignmentPriority, priority domain.AssignmentPriority) bool {
	for _, p := range priorities {
		if p == priority {
			return true
		}
	}
	return false
}

type fakeHistoryRepo struct {
	entries   []domain.StatusHistory
	createErr error
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.StatusHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = fmt.Sprintf("history-%d", len(r.entries)+1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByAssignment(_ context.Context, assignmentID string) ([]domain.StatusHistory, error) {
	var out []domain.StatusHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].AssignmentID == assignmentID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.StatusHistory, error) {
	var out []domain.StatusHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].CustomerID == customerID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	byID map[string]*domain.Customer
}

func newFakeCustomerRepo(customers ...*domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{byID: map[string]*domain.Customer{}}
	for _, c := range customers {
		repo.byID[c.ID] = c
	}
	return repo
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%d", len(r.byID)+1)
	}
	r.byID[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := r.byID[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return customer, nil
}

func (r *fakeCustomerRepo) GetByUserEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, customer := range r.byID {
		if customer.UserEmail == email {
			return customer, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) ListWithFilter(_ context.Context, filter repository.CustomerFilter) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, customer := range r.byID {
		if filter.Status != nil && customer.Status != *filter.Status {
			continue
		}
		if filter.GroupID != nil && !containsString(customer.Groups, *filter.GroupID) {
			continue
		}
		out = append(out, *customer)
	}
	return out, nil
}

func (r *fakeCustomerRepo) CountByStatus(_ context.Context, status domain.CustomerStatus) (int, error) {
	count := 0
	for _, customer := range r.byID {
		if customer.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

type fakeCommunicationRepo struct {
	created []domain.Communication
}

func (r *fakeCommunicationRepo) Create(_ context.Context, comm *domain.Communication) error {
	comm.ID = fmt.Sprintf("comm-%d", len(r.created)+1)
	comm.CreatedAt = time.Now()
	r.created = append(r.created, *comm)
	return nil
}

func (r *fakeCommunicationRepo) List(_ context.Context, limit int) ([]domain.Communication, error) {
	if limit > len(r.created) {
		limit = len(r.created)
	}
	out := make([]domain.Communication, 0, limit)
	for i := len(r.created) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.created[i])
	}
	return out, nil
}

func (r *fakeCommunicationRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Communication, error) {
	var out []domain.Communication
	for _, comm := range r.created {
		if comm.CustomerID != nil && *comm.CustomerID == customerID {
			out = append(out, comm)
			continue
		}
		if containsString(comm.CustomerIDs, customerID) {
			out = append(out, comm)
		}
	}
	return out, nil
}

type fakeRuleRepo struct {
	rules []domain.AutomationRule
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *domain.AutomationRule) error {
	rule.ID = fmt.Sprintf("rule-%d", len(r.rules)+1)
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *fakeRuleRepo) Update(_ context.Context, rule *domain.AutomationRule) error {
	for i := range r.rules {
		if r.rules[i].ID == rule.ID {
			r.rules[i] = *rule
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeRuleRepo) GetByID(_ context.Context, id string) (*domain.AutomationRule, error) {
	for i := range r.rules {
		if r.rules[i].ID == id {
			copied := r.rules[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeRuleRepo) List(_ context.Context) ([]domain.AutomationRule, error) {
	return append([]domain.AutomationRule{}, r.rules...), nil
}

func (r *fakeRuleRepo) ListEnabled(_ context.Context) ([]domain.AutomationRule, error) {
	var out []domain.AutomationRule
	for _, rule := range r.rules {
		if rule.IsEnabled {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) Delete(_ context.Context, id string) error {
	for i := range r.rules {
		if r.rules[i].ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeServiceRepo struct {
	byID map[string]*domain.Service
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{byID: map[string]*domain.Service{}}
	for _, s := range services {
		repo.byID[s.ID] = s
	}
	return repo
}

func (r *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	if service.ID == "" {
		service.ID = fmt.Sprintf("service-%d", len(r.byID)+1)
	}
	r.byID[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	if _, ok := r.byID[service.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	service, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return service, nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	var out []domain.Service
	for _, service := range r.byID {
		out = append(out, *service)
	}
	return out, nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type fakeTemplateRepo struct {
	templates []domain.MessageTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, template *domain.MessageTemplate) error {
	template.ID = fmt.Sprintf("template-%d", len(r.templates)+1)
	r.templates = append(r.templates, *template)
	return nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]domain.MessageTemplate, error) {
	return append([]domain.MessageTemplate{}, r.templates...), nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	for i := range r.templates {
		if r.templates[i].ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeInvalidator struct {
	calls []string
}

func (f *fakeInvalidator) InvalidateAssignmentViews(_ context.Context, assignmentID, customerID string) {
	f.calls = append(f.calls, assignmentID+"/"+customerID)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// AutomationRuleRepository encapsulates automation-rule persistence.
type AutomationRuleRepository interface {
	Create(ctx context.Context, rule *domain.AutomationRule) error
	Update(ctx context.Context, rule *domain.AutomationRule) error
	GetByID(ctx context.Context, id string) (*domain.AutomationRule, error)
	List(ctx context.Context) ([]domain.AutomationRule, error)
	ListEnabled(ctx context.Context) ([]domain.AutomationRule, error)
	Delete(ctx context.Context, id string) error
}

type automationRuleRepository struct {
	pool *pgxpool.Pool
}

// NewAutomationRuleRepository instantiates repository.
func NewAutomationRuleRepository(pool *pgxpool.Pool) AutomationRuleRepository {
	return &automationRuleRepository{pool: pool}
}

const ruleColumns = `id, name, trigger_event, status_value, channel, subject_template, message_template, is_enabled, created_at, updated_at`

func (r *automationRuleRepository) Create(ctx context.Context, rule *domain.AutomationRule) error {
	const query = `
        INSERT INTO automation_rules (name, trigger_event, status_value, channel, subject_template, message_template, is_enabled)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		rule.Name,
		rule.Trigger,
		rule.StatusValue,
		rule.Channel,
		rule.SubjectTemplate,
		rule.MessageTemplate,
		rule.IsEnabled,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *automationRuleRepository) Update(ctx context.Context, rule *domain.AutomationRule) error {
	const query = `
        UPDATE automation_rules SET name=$1, trigger_event=$2, status_value=$3, channel=$4,
            subject_template=$5, message_template=$6, is_enabled=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		rule.Name,
		rule.Trigger,
		rule.StatusValue,
		rule.Channel,
		rule.SubjectTemplate,
		rule.MessageTemplate,
		rule.IsEnabled,
		rule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *automationRuleRepository) GetByID(ctx context.Context, id string) (*domain.AutomationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules WHERE id=$1`
	var rule domain.AutomationRule
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&rule.ID,
		&rule.Name,
		&rule.Trigger,
		&rule.StatusValue,
		&rule.Channel,
		&rule.SubjectTemplate,
		&rule.MessageTemplate,
		&rule.IsEnabled,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *automationRuleRepository) List(ctx context.Context) ([]domain.AutomationRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM automation_rules ORDER BY created_at DESC`)
}

func (r *automationRuleRepository) ListEnabled(ctx context.Context) ([]domain.AutomationRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM automation_rules WHERE is_enabled ORDER BY created_at DESC`)
}

func (r *automationRuleRepository) list(ctx context.Context, query string) ([]domain.AutomationRule, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AutomationRule
	for rows.Next() {
		var rule domain.AutomationRule
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Trigger,
			&rule.StatusValue,
			&rule.Channel,
			&rule.SubjectTemplate,
			&rule.MessageTemplate,
			&rule.IsEnabled,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}

func (r *automationRuleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM automation_rules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// TemplateRepository stores reusable message templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.MessageTemplate) error
	List(ctx context.Context) ([]domain.MessageTemplate, error)
	Delete(ctx context.Context, id string) error
}

type templateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository instantiates repository.
func NewTemplateRepository(pool *pgxpool.Pool) TemplateRepository {
	return &templateRepository{pool: pool}
}

func (r *templateRepository) Create(ctx context.Context, template *domain.MessageTemplate) error {
	const query = `
        INSERT INTO message_templates (name, subject, message, channel)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		template.Name,
		template.Subject,
		template.Message,
		template.Channel,
	).Scan(&template.ID, &template.CreatedAt)
}

func (r *templateRepository) List(ctx context.Context) ([]domain.MessageTemplate, error) {
	const query = `SELECT id, name, subject, message, channel, created_at FROM message_templates ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MessageTemplate
	for rows.Next() {
		var template domain.MessageTemplate
		if err := rows.Scan(
			&template.ID,
			&template.Name,
			&template.Subject,
			&template.Message,
			&template.Channel,
			&template.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, template)
	}
	return result, rows.Err()
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM message_templates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

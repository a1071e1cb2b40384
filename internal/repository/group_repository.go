package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// GroupRepository encapsulates customer-group persistence.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.CustomerGroup) error
	Update(ctx context.Context, group *domain.CustomerGroup) error
	GetByID(ctx context.Context, id string) (*domain.CustomerGroup, error)
	List(ctx context.Context) ([]domain.CustomerGroup, error)
	Delete(ctx context.Context, id string) error
}

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository instantiates repository.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.CustomerGroup) error {
	const query = `
        INSERT INTO customer_groups (name, description, color)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		group.Name,
		group.Description,
		group.Color,
	).Scan(&group.ID, &group.CreatedAt)
}

func (r *groupRepository) Update(ctx context.Context, group *domain.CustomerGroup) error {
	const query = `UPDATE customer_groups SET name=$1, description=$2, color=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, group.Name, group.Description, group.Color, group.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.CustomerGroup, error) {
	const query = `SELECT id, name, description, color, created_at FROM customer_groups WHERE id=$1`
	var group domain.CustomerGroup
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Color,
		&group.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]domain.CustomerGroup, error) {
	const query = `SELECT id, name, description, color, created_at FROM customer_groups ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomerGroup
	for rows.Next() {
		var group domain.CustomerGroup
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Color,
			&group.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, group)
	}
	return result, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customer_groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

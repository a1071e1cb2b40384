package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// StatusHistoryRepository stores audit entries. Append-only: rows are never
// updated or deleted.
type StatusHistoryRepository interface {
	Create(ctx context.Context, history *domain.StatusHistory) error
	ListByAssignment(ctx context.Context, assignmentID string) ([]domain.StatusHistory, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.StatusHistory, error)
}

type statusHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewStatusHistoryRepository builds repository.
func NewStatusHistoryRepository(pool *pgxpool.Pool) StatusHistoryRepository {
	return &statusHistoryRepository{pool: pool}
}

func (r *statusHistoryRepository) Create(ctx context.Context, history *domain.StatusHistory) error {
	const query = `
        INSERT INTO status_history (assignment_id, customer_id, previous_status, new_status, changed_by, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		history.AssignmentID,
		history.CustomerID,
		history.PreviousStatus,
		history.NewStatus,
		history.ChangedBy,
		history.Notes,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *statusHistoryRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]domain.StatusHistory, error) {
	const query = `
        SELECT id, assignment_id, customer_id, previous_status, new_status, changed_by, notes, created_at
        FROM status_history WHERE assignment_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusHistory(rows)
}

func (r *statusHistoryRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.StatusHistory, error) {
	const query = `
        SELECT id, assignment_id, customer_id, previous_status, new_status, changed_by, notes, created_at
        FROM status_history WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStatusHistory(rows)
}

func scanStatusHistory(rows pgx.Rows) ([]domain.StatusHistory, error) {
	var result []domain.StatusHistory
	for rows.Next() {
		var history domain.StatusHistory
		if err := rows.Scan(
			&history.ID,
			&history.AssignmentID,
			&history.CustomerID,
			&history.PreviousStatus,
			&history.NewStatus,
			&history.ChangedBy,
			&history.Notes,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}

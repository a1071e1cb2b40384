package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// CommunicationRepository stores outbound-message log entries.
type CommunicationRepository interface {
	Create(ctx context.Context, comm *domain.Communication) error
	List(ctx context.Context, limit int) ([]domain.Communication, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Communication, error)
}

type communicationRepository struct {
	pool *pgxpool.Pool
}

// NewCommunicationRepository instantiates repository.
func NewCommunicationRepository(pool *pgxpool.Pool) CommunicationRepository {
	return &communicationRepository{pool: pool}
}

func (r *communicationRepository) Create(ctx context.Context, comm *domain.Communication) error {
	const query = `
        INSERT INTO communications (customer_id, customer_ids, channel, subject, message, status, sent_to_group, is_bulk)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comm.CustomerID,
		comm.CustomerIDs,
		comm.Channel,
		comm.Subject,
		comm.Message,
		comm.Status,
		comm.SentToGroup,
		comm.IsBulk,
	).Scan(&comm.ID, &comm.CreatedAt)
}

func (r *communicationRepository) List(ctx context.Context, limit int) ([]domain.Communication, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
        SELECT id, customer_id, customer_ids, channel, subject, message, status, sent_to_group, is_bulk, created_at
        FROM communications ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommunications(rows)
}

func (r *communicationRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Communication, error) {
	const query = `
        SELECT id, customer_id, customer_ids, channel, subject, message, status, sent_to_group, is_bulk, created_at
        FROM communications
        WHERE customer_id=$1 OR $1::uuid = ANY(customer_ids)
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCommunications(rows)
}

func scanCommunications(rows pgx.Rows) ([]domain.Communication, error) {
	var result []domain.Communication
	for rows.Next() {
		var comm domain.Communication
		if err := rows.Scan(
			&comm.ID,
			&comm.CustomerID,
			&comm.CustomerIDs,
			&comm.Channel,
			&comm.Subject,
			&comm.Message,
			&comm.Status,
			&comm.SentToGroup,
			&comm.IsBulk,
			&comm.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comm)
	}
	return result, rows.Err()
}

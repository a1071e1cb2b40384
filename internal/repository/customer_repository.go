package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// CustomerFilter captures customer listing parameters.
type CustomerFilter struct {
	Status     *domain.CustomerStatus
	GroupID    *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// CustomerRepository encapsulates customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByUserEmail(ctx context.Context, email string) (*domain.Customer, error)
	ListWithFilter(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	CountByStatus(ctx context.Context, status domain.CustomerStatus) (int, error)
	Delete(ctx context.Context, id string) error
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, full_name, phone_number, email, whatsapp_number, address, notes,
               status, groups, user_email, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (full_name, phone_number, email, whatsapp_number, address, notes, status, groups, user_email)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		customer.FullName,
		customer.PhoneNumber,
		customer.Email,
		customer.WhatsappNumber,
		customer.Address,
		customer.Notes,
		customer.Status,
		customer.Groups,
		customer.UserEmail,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET full_name=$1, phone_number=$2, email=$3, whatsapp_number=$4,
            address=$5, notes=$6, status=$7, groups=$8, user_email=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		customer.FullName,
		customer.PhoneNumber,
		customer.Email,
		customer.WhatsappNumber,
		customer.Address,
		customer.Notes,
		customer.Status,
		customer.Groups,
		customer.UserEmail,
		customer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id=$1`, customerColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *customerRepository) GetByUserEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE user_email=$1 ORDER BY created_at LIMIT 1`, customerColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.FullName,
		&customer.PhoneNumber,
		&customer.Email,
		&customer.WhatsappNumber,
		&customer.Address,
		&customer.Notes,
		&customer.Status,
		&customer.Groups,
		&customer.UserEmail,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) ListWithFilter(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error) {
	base := fmt.Sprintf(`SELECT %s FROM customers`, customerColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(groups)", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(full_name) LIKE %s OR LOWER(email) LIKE %s OR phone_number LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.FullName,
			&customer.PhoneNumber,
			&customer.Email,
			&customer.WhatsappNumber,
			&customer.Address,
			&customer.Notes,
			&customer.Status,
			&customer.Groups,
			&customer.UserEmail,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func (r *customerRepository) CountByStatus(ctx context.Context, status domain.CustomerStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

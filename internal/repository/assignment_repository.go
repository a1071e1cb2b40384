package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// AssignmentFilter captures listing parameters for service assignments.
type AssignmentFilter struct {
	CustomerID *string
	ServiceID  *string
	Statuses   []domain.AssignmentStatus
	Priorities []domain.AssignmentPriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// AssignmentRepository encapsulates service-assignment persistence.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.ServiceAssignment) error
	Update(ctx context.Context, assignment *domain.ServiceAssignment) error
	GetByID(ctx context.Context, id string) (*domain.ServiceAssignment, error)
	ListWithFilter(ctx context.Context, filter AssignmentFilter) ([]domain.ServiceAssignment, error)
	CountWithFilter(ctx context.Context, filter AssignmentFilter) (int, error)
	CountByService(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, id string) error
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = `id, customer_id, service_id, service_name, status, priority,
               start_date, expected_completion_date, actual_completion_date,
               assigned_technician, notes, created_at, updated_at`

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.ServiceAssignment) error {
	const query = `
        INSERT INTO service_assignments (customer_id, service_id, service_name, status, priority,
            start_date, expected_completion_date, assigned_technician, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		assignment.CustomerID,
		nullable(assignment.ServiceID),
		assignment.ServiceName,
		assignment.Status,
		assignment.Priority,
		assignment.StartDate,
		assignment.ExpectedCompletionDate,
		assignment.AssignedTechnician,
		assignment.Notes,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *domain.ServiceAssignment) error {
	const query = `
        UPDATE service_assignments SET service_id=$1, service_name=$2, status=$3, priority=$4,
            start_date=$5, expected_completion_date=$6, actual_completion_date=$7,
            assigned_technician=$8, notes=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		nullable(assignment.ServiceID),
		assignment.ServiceName,
		assignment.Status,
		assignment.Priority,
		assignment.StartDate,
		assignment.ExpectedCompletionDate,
		assignment.ActualCompletionDate,
		assignment.AssignedTechnician,
		assignment.Notes,
		assignment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.ServiceAssignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM service_assignments WHERE id=$1`, assignmentColumns)
	var assignment domain.ServiceAssignment
	var serviceID *string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.CustomerID,
		&serviceID,
		&assignment.ServiceName,
		&assignment.Status,
		&assignment.Priority,
		&assignment.StartDate,
		&assignment.ExpectedCompletionDate,
		&assignment.ActualCompletionDate,
		&assignment.AssignedTechnician,
		&assignment.Notes,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if serviceID != nil {
		assignment.ServiceID = *serviceID
	}
	return &assignment, nil
}

func buildAssignmentWhere(filter AssignmentFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.ServiceID != nil {
		args = append(args, *filter.ServiceID)
		clauses = append(clauses, fmt.Sprintf("service_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(service_name) LIKE %s OR LOWER(assigned_technician) LIKE %s)", placeholder, placeholder))
	}
	return strings.Join(clauses, " AND "), args
}

func (r *assignmentRepository) ListWithFilter(ctx context.Context, filter AssignmentFilter) ([]domain.ServiceAssignment, error) {
	base := fmt.Sprintf(`SELECT %s FROM service_assignments`, assignmentColumns)
	where, args := buildAssignmentWhere(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *assignmentRepository) CountWithFilter(ctx context.Context, filter AssignmentFilter) (int, error) {
	where, args := buildAssignmentWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM service_assignments WHERE %s`, where)

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *assignmentRepository) CountByService(ctx context.Context) (map[string]int, error) {
	const query = `SELECT service_id::text, COUNT(*) FROM service_assignments
                   WHERE service_id IS NOT NULL GROUP BY service_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var serviceID string
		var count int
		if err := rows.Scan(&serviceID, &count); err != nil {
			return nil, err
		}
		counts[serviceID] = count
	}
	return counts, rows.Err()
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_assignments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAssignments(rows pgx.Rows) ([]domain.ServiceAssignment, error) {
	var result []domain.ServiceAssignment
	for rows.Next() {
		var assignment domain.ServiceAssignment
		var serviceID *string
		if err := rows.Scan(
			&assignment.ID,
			&assignment.CustomerID,
			&serviceID,
			&assignment.ServiceName,
			&assignment.Status,
			&assignment.Priority,
			&assignment.StartDate,
			&assignment.ExpectedCompletionDate,
			&assignment.ActualCompletionDate,
			&assignment.AssignedTechnician,
			&assignment.Notes,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if serviceID != nil {
			assignment.ServiceID = *serviceID
		}
		result = append(result, assignment)
	}
	return result, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

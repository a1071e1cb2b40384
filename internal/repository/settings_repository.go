package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zayanservices/crm-service/internal/domain"
)

// SettingsRepository persists the business-settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, settings *domain.BusinessSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	const query = `
        SELECT id, business_name, phone_number, email, address, notify_on_status_change, notify_on_completion, updated_at
        FROM business_settings ORDER BY updated_at DESC LIMIT 1`
	var settings domain.BusinessSettings
	if err := r.pool.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.BusinessName,
		&settings.PhoneNumber,
		&settings.Email,
		&settings.Address,
		&settings.NotifyOnStatusChange,
		&settings.NotifyOnCompletion,
		&settings.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.BusinessSettings) error {
	if settings.ID == "" {
		existing, err := r.Get(ctx)
		switch {
		case err == nil:
			settings.ID = existing.ID
		case errors.Is(err, pgx.ErrNoRows):
			const insert = `
                INSERT INTO business_settings (business_name, phone_number, email, address, notify_on_status_change, notify_on_completion)
                VALUES ($1,$2,$3,$4,$5,$6)
                RETURNING id, updated_at`
			return r.pool.QueryRow(ctx, insert,
				settings.BusinessName,
				settings.PhoneNumber,
				settings.Email,
				settings.Address,
				settings.NotifyOnStatusChange,
				settings.NotifyOnCompletion,
			).Scan(&settings.ID, &settings.UpdatedAt)
		default:
			return err
		}
	}

	const update = `
        UPDATE business_settings SET business_name=$1, phone_number=$2, email=$3, address=$4,
            notify_on_status_change=$5, notify_on_completion=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, update,
		settings.BusinessName,
		settings.PhoneNumber,
		settings.Email,
		settings.Address,
		settings.NotifyOnStatusChange,
		settings.NotifyOnCompletion,
		settings.ID,
	).Scan(&settings.UpdatedAt)
}

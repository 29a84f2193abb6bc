package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PendingRegistrationRepository interface {
	Upsert(ctx context.Context, pending *entity.PendingRegistration) error
	FindValid(ctx context.Context, email, code string) (*entity.PendingRegistration, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type pendingRegistrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPendingRegistrationRepository(db database.PgxIface, log *zap.Logger) PendingRegistrationRepository {
	return &pendingRegistrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "pending_registration")),
	}
}

// Upsert replaces any earlier code for the same email so only the latest
// one can verify.
func (r *pendingRegistrationRepository) Upsert(ctx context.Context, pending *entity.PendingRegistration) error {
	query := `
		INSERT INTO pending_registrations (id, email, password, name, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET password = EXCLUDED.password, name = EXCLUDED.name,
		    code = EXCLUDED.code, expires_at = EXCLUDED.expires_at,
		    created_at = EXCLUDED.created_at
	`

	_, err := r.db.Exec(ctx, query,
		pending.ID,
		pending.Email,
		pending.PasswordHash,
		pending.Name,
		pending.Code,
		pending.ExpiresAt,
		pending.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert pending registration",
			zap.Error(err),
			zap.String("email", pending.Email),
		)
		return fmt.Errorf("upsert pending registration %s: %w", pending.Email, err)
	}

	return nil
}

func (r *pendingRegistrationRepository) FindValid(ctx context.Context, email, code string) (*entity.PendingRegistration, error) {
	query := `
		SELECT id, email, password, name, code, expires_at, created_at
		FROM pending_registrations
		WHERE email = $1 AND code = $2 AND expires_at > NOW()
	`

	var pending entity.PendingRegistration
	err := r.db.QueryRow(ctx, query, email, code).Scan(
		&pending.ID,
		&pending.Email,
		&pending.PasswordHash,
		&pending.Name,
		&pending.Code,
		&pending.ExpiresAt,
		&pending.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending registration",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find pending registration %s: %w", email, err)
	}

	return &pending, nil
}

func (r *pendingRegistrationRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM pending_registrations WHERE email = $1`

	_, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete pending registration",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("delete pending registration %s: %w", email, err)
	}

	return nil
}

func (r *pendingRegistrationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM pending_registrations WHERE expires_at <= NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to delete expired pending registrations", zap.Error(err))
		return 0, fmt.Errorf("delete expired pending registrations: %w", err)
	}

	return result.RowsAffected(), nil
}

package postgres

// Package postgres implements the partner application registry. Records
// are append-only; reviews only flip the status field.

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tripgate/portal-api/internal/domain/model"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
)

// ApplicationRepo provides database operations for partner applications.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

var _ ports.ApplicationRegistry = (*ApplicationRepo)(nil)

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// EnsureSchema creates the registry table when it does not exist.
func (r *ApplicationRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS partner_applications (
			id UUID PRIMARY KEY,
			company_name TEXT NOT NULL,
			contact_email TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (company_name, contact_email)
		)
	`)
	return err
}

// Submit inserts a new application in pending status.
func (r *ApplicationRepo) Submit(ctx context.Context, app model.Application) (model.Application, error) {
	if err := app.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return model.Application{}, apperrors.ValidationField(verr.Field, verr.Message)
		}
		return model.Application{}, apperrors.Validation(err.Error())
	}

	rows, err := r.pool.Query(ctx, `
		INSERT INTO partner_applications (id, company_name, contact_email, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_name, contact_email, message, status, created_at
	`,
		uuid.NewString(),
		strings.TrimSpace(app.CompanyName),
		strings.ToLower(strings.TrimSpace(app.ContactEmail)),
		app.Message,
		model.ApplicationPending,
	)
	if err != nil {
		return model.Application{}, mapWriteErr(err)
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
	if err != nil {
		return model.Application{}, mapWriteErr(err)
	}
	return out, nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (model.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_name, contact_email, message, status, created_at
		FROM partner_applications
		WHERE id = $1
	`, id)
	if err != nil {
		return model.Application{}, err
	}
	defer rows.Close()

	out, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, apperrors.NotFoundf("application %s not found", id)
		}
		return model.Application{}, err
	}
	return out, nil
}

// ListByStatus retrieves applications in the given status, newest first.
func (r *ApplicationRepo) ListByStatus(ctx context.Context, status model.ApplicationStatus) ([]model.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_name, contact_email, message, status, created_at
		FROM partner_applications
		WHERE status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
}

// mapWriteErr translates Postgres constraint violations to app errors.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.Conflict("an application for this company and contact already exists")
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return apperrors.Validation(pgErr.Message)
		}
	}
	return err
}

package statusinfra

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// PostgresStatusRepository implementación de PostgreSQL para StatusRepository
type PostgresStatusRepository struct {
	db *sqlx.DB
}

// NewPostgresStatusRepository crea una nueva instancia del repositorio de estados
func NewPostgresStatusRepository(db *sqlx.DB) status.StatusRepository {
	return &PostgresStatusRepository{
		db: db,
	}
}

// FindAll carga la taxonomía completa del tenant, ordenada y anidada.
func (r *PostgresStatusRepository) FindAll(ctx context.Context, tenantID kernel.TenantID) (status.Taxonomy, error) {
	mainQuery := `
		SELECT id, tenant_id, name, color, sort_order, created_at, updated_at
		FROM main_statuses
		WHERE tenant_id = $1
		ORDER BY sort_order ASC, name ASC`

	var mains []status.MainStatus
	if err := r.db.SelectContext(ctx, &mains, mainQuery, tenantID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to load main statuses", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String())
	}

	subQuery := `
		SELECT s.id, s.main_status_id, s.name, s.color, s.sort_order, s.created_at, s.updated_at
		FROM sub_statuses s
		JOIN main_statuses m ON m.id = s.main_status_id
		WHERE m.tenant_id = $1
		ORDER BY s.sort_order ASC, s.name ASC`

	var subs []status.SubStatus
	if err := r.db.SelectContext(ctx, &subs, subQuery, tenantID.String()); err != nil {
		return nil, errx.Wrap(err, "failed to load sub statuses", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String())
	}

	byMain := make(map[kernel.MainStatusID][]status.SubStatus, len(mains))
	for _, sub := range subs {
		byMain[sub.MainStatusID] = append(byMain[sub.MainStatusID], sub)
	}
	for i := range mains {
		mains[i].SubStatuses = byMain[mains[i].ID]
	}

	return status.Taxonomy(mains), nil
}

// SaveMain guarda o actualiza un estado principal
func (r *PostgresStatusRepository) SaveMain(ctx context.Context, m status.MainStatus) error {
	query := `
		INSERT INTO main_statuses (id, tenant_id, name, color, sort_order, created_at, updated_at)
		VALUES (:id, :tenant_id, :name, :color, :sort_order, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "main_statuses_tenant_id_name_key" {
				return status.ErrStatusNameTaken().WithDetail("name", m.Name)
			}
		}
		return errx.Wrap(err, "failed to save main status", errx.TypeInternal).
			WithDetail("main_status_id", m.ID.String())
	}

	return nil
}

// SaveSub guarda o actualiza un sub-estado
func (r *PostgresStatusRepository) SaveSub(ctx context.Context, tenantID kernel.TenantID, s status.SubStatus) error {
	query := `
		INSERT INTO sub_statuses (id, main_status_id, name, color, sort_order, created_at, updated_at)
		SELECT :id, :main_status_id, :name, :color, :sort_order, :created_at, :updated_at
		WHERE EXISTS (
			SELECT 1 FROM main_statuses WHERE id = :main_status_id AND tenant_id = :tenant_id
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at`

	arg := map[string]any{
		"id":             s.ID.String(),
		"main_status_id": s.MainStatusID.String(),
		"name":           s.Name,
		"color":          s.Color,
		"sort_order":     s.SortOrder,
		"created_at":     s.CreatedAt,
		"updated_at":     s.UpdatedAt,
		"tenant_id":      tenantID.String(),
	}

	result, err := r.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" && pqErr.Constraint == "sub_statuses_main_status_id_fkey" {
				return status.ErrMainStatusNotFound().
					WithDetail("main_status_id", s.MainStatusID.String())
			}
		}
		return errx.Wrap(err, "failed to save sub status", errx.TypeInternal).
			WithDetail("sub_status_id", s.ID.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		// The guarded insert matched no main status in this tenant.
		return status.ErrMainStatusNotFound().
			WithDetail("main_status_id", s.MainStatusID.String()).
			WithDetail("tenant_id", tenantID.String())
	}

	return nil
}

// DeleteMain elimina un estado principal y sus sub-estados (cascade)
func (r *PostgresStatusRepository) DeleteMain(ctx context.Context, id kernel.MainStatusID, tenantID kernel.TenantID) error {
	query := `DELETE FROM main_statuses WHERE id = $1 AND tenant_id = $2`

	result, err := r.db.ExecContext(ctx, query, id.String(), tenantID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete main status", errx.TypeInternal).
			WithDetail("main_status_id", id.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return status.ErrMainStatusNotFound().WithDetail("main_status_id", id.String())
	}

	return nil
}

// DeleteSub elimina un sub-estado
func (r *PostgresStatusRepository) DeleteSub(ctx context.Context, id kernel.SubStatusID, tenantID kernel.TenantID) error {
	query := `
		DELETE FROM sub_statuses s
		USING main_statuses m
		WHERE s.id = $1 AND s.main_status_id = m.id AND m.tenant_id = $2`

	result, err := r.db.ExecContext(ctx, query, id.String(), tenantID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete sub status", errx.TypeInternal).
			WithDetail("sub_status_id", id.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return status.ErrSubStatusNotFound().WithDetail("sub_status_id", id.String())
	}

	return nil
}

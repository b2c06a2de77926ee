package teaminfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/team"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// PostgresTeamRepository implementación de PostgreSQL para TeamRepository
type PostgresTeamRepository struct {
	db *sqlx.DB
}

// NewPostgresTeamRepository crea una nueva instancia del repositorio de equipos
func NewPostgresTeamRepository(db *sqlx.DB) team.TeamRepository {
	return &PostgresTeamRepository{
		db: db,
	}
}

const teamColumns = `
	id, tenant_id, name, team_type, parent_team_id, level,
	department_id, lead_user_id, is_active, created_at, updated_at`

// FindByID busca un equipo por ID y tenant
func (r *PostgresTeamRepository) FindByID(ctx context.Context, id kernel.TeamID, tenantID kernel.TenantID) (*team.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE id = $1 AND tenant_id = $2`

	var t team.Team
	err := r.db.GetContext(ctx, &t, query, id.String(), tenantID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, team.ErrTeamNotFound().WithDetail("team_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find team by id", errx.TypeInternal).
			WithDetail("team_id", id.String()).
			WithDetail("tenant_id", tenantID.String())
	}

	return &t, nil
}

// FindByTenant busca los equipos del tenant, ordenados por level y nombre.
func (r *PostgresTeamRepository) FindByTenant(ctx context.Context, tenantID kernel.TenantID, includeInactive bool) ([]team.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE tenant_id = $1`
	if !includeInactive {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY level ASC, name ASC`

	var teams []team.Team
	err := r.db.SelectContext(ctx, &teams, query, tenantID.String())
	if err != nil {
		return nil, errx.Wrap(err, "failed to find teams by tenant", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String())
	}

	return teams, nil
}

// Save guarda o actualiza un equipo
func (r *PostgresTeamRepository) Save(ctx context.Context, t team.Team) error {
	query := `
		INSERT INTO teams (
			id, tenant_id, name, team_type, parent_team_id, level,
			department_id, lead_user_id, is_active, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :name, :team_type, :parent_team_id, :level,
			:department_id, :lead_user_id, :is_active, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			team_type = EXCLUDED.team_type,
			parent_team_id = EXCLUDED.parent_team_id,
			level = EXCLUDED.level,
			department_id = EXCLUDED.department_id,
			lead_user_id = EXCLUDED.lead_user_id,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, t)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "teams_tenant_id_name_key" {
				return team.ErrTeamNameTaken().WithDetail("name", t.Name)
			}
		}
		return errx.Wrap(err, "failed to save team", errx.TypeInternal).
			WithDetail("team_id", t.ID.String())
	}

	return nil
}

// SaveAll persiste un lote de equipos en una transacción (cascada de levels).
func (r *PostgresTeamRepository) SaveAll(ctx context.Context, tenantID kernel.TenantID, teams []team.Team) error {
	if len(teams) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errx.Wrap(err, "failed to begin transaction", errx.TypeInternal)
	}
	defer tx.Rollback()

	query := `
		UPDATE teams SET
			parent_team_id = :parent_team_id,
			level = :level,
			department_id = :department_id,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id`

	for _, t := range teams {
		if t.TenantID != tenantID {
			return team.ErrTeamNotFound().
				WithDetail("team_id", t.ID.String()).
				WithDetail("tenant_id", tenantID.String())
		}
		if _, err := tx.NamedExecContext(ctx, query, t); err != nil {
			return errx.Wrap(err, "failed to update team in batch", errx.TypeInternal).
				WithDetail("team_id", t.ID.String())
		}
	}

	if err := tx.Commit(); err != nil {
		return errx.Wrap(err, "failed to commit team batch", errx.TypeInternal)
	}

	return nil
}

package candidateinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/candidate"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// PostgresCandidateRepository implementación de PostgreSQL para CandidateRepository
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository crea una nueva instancia del repositorio de candidatos
func NewPostgresCandidateRepository(db *sqlx.DB) candidate.CandidateRepository {
	return &PostgresCandidateRepository{
		db: db,
	}
}

const candidateColumns = `
	id, tenant_id, job_id, name, email, phone, skills, metadata,
	legacy_status, main_status_id, sub_status_id, created_at, updated_at`

// FindByID busca un candidato por ID y tenant
func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*candidate.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE id = $1 AND tenant_id = $2`

	var c candidate.Candidate
	err := r.db.GetContext(ctx, &c, query, id.String(), tenantID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find candidate by id", errx.TypeInternal).
			WithDetail("candidate_id", id.String()).
			WithDetail("tenant_id", tenantID.String())
	}

	return &c, nil
}

// FindByJob busca los candidatos de un job
func (r *PostgresCandidateRepository) FindByJob(ctx context.Context, jobID kernel.JobID, tenantID kernel.TenantID) ([]*candidate.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE job_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC`

	var candidates []candidate.Candidate
	err := r.db.SelectContext(ctx, &candidates, query, jobID.String(), tenantID.String())
	if err != nil {
		return nil, errx.Wrap(err, "failed to find candidates by job", errx.TypeInternal).
			WithDetail("job_id", jobID.String()).
			WithDetail("tenant_id", tenantID.String())
	}

	result := make([]*candidate.Candidate, len(candidates))
	for i := range candidates {
		result[i] = &candidates[i]
	}

	return result, nil
}

// FindByTenant busca todos los candidatos de un tenant
func (r *PostgresCandidateRepository) FindByTenant(ctx context.Context, tenantID kernel.TenantID) ([]*candidate.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE tenant_id = $1
		ORDER BY created_at DESC`

	var candidates []candidate.Candidate
	err := r.db.SelectContext(ctx, &candidates, query, tenantID.String())
	if err != nil {
		return nil, errx.Wrap(err, "failed to find candidates by tenant", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String())
	}

	result := make([]*candidate.Candidate, len(candidates))
	for i := range candidates {
		result[i] = &candidates[i]
	}

	return result, nil
}

// Save guarda o actualiza un candidato
func (r *PostgresCandidateRepository) Save(ctx context.Context, c candidate.Candidate) error {
	exists, err := r.candidateExists(ctx, c.ID, c.TenantID)
	if err != nil {
		return errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal)
	}

	if exists {
		return r.update(ctx, c)
	}
	return r.create(ctx, c)
}

func (r *PostgresCandidateRepository) create(ctx context.Context, c candidate.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, tenant_id, job_id, name, email, phone, skills, metadata,
			legacy_status, main_status_id, sub_status_id, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :job_id, :name, :email, :phone, :skills, :metadata,
			:legacy_status, :main_status_id, :sub_status_id, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "candidates_tenant_id_job_id_email_key" {
				return candidate.ErrCandidateAlreadyExists().
					WithDetail("email", c.Email).
					WithDetail("job_id", c.JobID.String())
			}
		}
		return errx.Wrap(err, "failed to create candidate", errx.TypeInternal).
			WithDetail("candidate_id", c.ID.String())
	}

	return nil
}

func (r *PostgresCandidateRepository) update(ctx context.Context, c candidate.Candidate) error {
	query := `
		UPDATE candidates SET
			name = :name,
			email = :email,
			phone = :phone,
			skills = :skills,
			metadata = :metadata,
			legacy_status = :legacy_status,
			main_status_id = :main_status_id,
			sub_status_id = :sub_status_id,
			updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return errx.Wrap(err, "failed to update candidate", errx.TypeInternal).
			WithDetail("candidate_id", c.ID.String())
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rowsAffected == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", c.ID.String())
	}

	return nil
}

// ExistsByEmailAndJob verifica si el candidato ya aplicó al job
func (r *PostgresCandidateRepository) ExistsByEmailAndJob(ctx context.Context, email string, jobID kernel.JobID, tenantID kernel.TenantID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1 AND job_id = $2 AND tenant_id = $3)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, jobID.String(), tenantID.String())
	if err != nil {
		return false, errx.Wrap(err, "failed to check candidate existence by email", errx.TypeInternal).
			WithDetail("email", email).
			WithDetail("job_id", jobID.String())
	}

	return exists, nil
}

func (r *PostgresCandidateRepository) candidateExists(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1 AND tenant_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id.String(), tenantID.String())
	if err != nil {
		return false, errx.Wrap(err, "failed to check candidate existence", errx.TypeInternal).
			WithDetail("candidate_id", id.String())
	}

	return exists, nil
}

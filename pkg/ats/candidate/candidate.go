package candidate

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// ============================================================================
// Candidate Entity
// ============================================================================
//
// Candidates carry two parallel status representations: a legacy free-text
// status string from the old system and the newer (main, sub) status id pair.
// The pair wins when both are present. Rows are never hard-deleted; a
// candidate leaves the pipeline through a terminal status, not a DELETE.

// Candidate es la entidad de un candidato en el pipeline
type Candidate struct {
	ID       kernel.CandidateID `db:"id" json:"id"`
	TenantID kernel.TenantID    `db:"tenant_id" json:"tenant_id"`
	JobID    kernel.JobID       `db:"job_id" json:"job_id"`
	Name     string             `db:"name" json:"name"`
	Email    string             `db:"email" json:"email"`
	Phone    *string            `db:"phone" json:"phone,omitempty"`

	Skills   pq.StringArray `db:"skills" json:"skills"`
	Metadata types.JSONText `db:"metadata" json:"metadata,omitempty"`

	// Dual status representation (migration in progress in the source data).
	LegacyStatus string               `db:"legacy_status" json:"legacy_status"`
	MainStatusID *kernel.MainStatusID `db:"main_status_id" json:"main_status_id,omitempty"`
	SubStatusID  *kernel.SubStatusID  `db:"sub_status_id" json:"sub_status_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasResolvedStatus reporta si el candidato tiene el par (main, sub) asignado.
func (c *Candidate) HasResolvedStatus() bool {
	return c.MainStatusID != nil && c.SubStatusID != nil
}

// SetStatus asigna el par (main, sub) resuelto. El string legacy se conserva
// como histórico pero deja de tener precedencia.
func (c *Candidate) SetStatus(mainID kernel.MainStatusID, subID kernel.SubStatusID) {
	c.MainStatusID = &mainID
	c.SubStatusID = &subID
	c.UpdatedAt = time.Now()
}

// ============================================================================
// StatusRef - la representación canónica
// ============================================================================
//
// The two raw status fields are reconciled exactly once, at the data-access
// boundary, into this union. Everything downstream (projection, filtering,
// display) consumes the union, never the raw pair of optionals.

// StatusRefKind distingue las dos variantes del union
type StatusRefKind string

const (
	StatusRefLegacy   StatusRefKind = "legacy"
	StatusRefResolved StatusRefKind = "resolved"
)

// StatusRef es el estado canónico de un candidato: o el string legacy, o el
// par (main, sub) resuelto contra la taxonomía.
type StatusRef struct {
	Kind   StatusRefKind        `json:"kind"`
	Legacy string               `json:"legacy,omitempty"`
	Pair   *status.ResolvedPair `json:"pair,omitempty"`
}

// ResolveStatus reconcilia los campos crudos del candidato contra la
// taxonomía. Si el par de ids no resuelve (referencia huérfana) devuelve la
// variante legacy junto con el error de lookup: el caller decide si degrada
// o propaga.
func ResolveStatus(c *Candidate, taxonomy status.Taxonomy) (StatusRef, error) {
	if c.HasResolvedStatus() {
		pair, err := taxonomy.Resolve(*c.SubStatusID)
		if err == nil {
			return StatusRef{Kind: StatusRefResolved, Legacy: c.LegacyStatus, Pair: pair}, nil
		}
		return StatusRef{Kind: StatusRefLegacy, Legacy: c.LegacyStatus}, err
	}
	return StatusRef{Kind: StatusRefLegacy, Legacy: c.LegacyStatus}, nil
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreateCandidateRequest representa la petición de alta de un candidato
type CreateCandidateRequest struct {
	JobID    kernel.JobID   `json:"job_id" validate:"required"`
	Name     string         `json:"name" validate:"required,min=2"`
	Email    string         `json:"email" validate:"required,email"`
	Phone    *string        `json:"phone,omitempty"`
	Skills   []string       `json:"skills,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	// Optional initial legacy status; defaults to "New" when empty.
	LegacyStatus string `json:"legacy_status,omitempty"`
}

// UpdateCandidateStatusRequest mueve al candidato a un sub-estado
type UpdateCandidateStatusRequest struct {
	SubStatusID kernel.SubStatusID `json:"sub_status_id" validate:"required"`
}

// CandidateView es un candidato con su proyección de pipeline calculada
type CandidateView struct {
	Candidate  Candidate  `json:"candidate"`
	Status     StatusRef  `json:"status"`
	Projection Projection `json:"projection"`
}

// CandidateListResponse para listas de candidatos proyectados
type CandidateListResponse struct {
	Candidates []CandidateView `json:"candidates"`
	Total      int             `json:"total"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("CANDIDATE")

var (
	CodeCandidateNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCandidateAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate already applied to this job")
	CodeInvalidStatusRef       = ErrRegistry.Register("INVALID_STATUS_REF", errx.TypeBusiness, http.StatusUnprocessableEntity, "Status reference does not resolve against the taxonomy")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrCandidateAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCandidateAlreadyExists)
}

func ErrInvalidStatusRef() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusRef)
}

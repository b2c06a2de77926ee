package candidate

import (
	"context"

	"github.com/nexhire/nexhire/pkg/kernel"
)

// CandidateRepository define el contrato para la persistencia de candidatos
type CandidateRepository interface {
	FindByID(ctx context.Context, id kernel.CandidateID, tenantID kernel.TenantID) (*Candidate, error)
	FindByJob(ctx context.Context, jobID kernel.JobID, tenantID kernel.TenantID) ([]*Candidate, error)
	FindByTenant(ctx context.Context, tenantID kernel.TenantID) ([]*Candidate, error)
	Save(ctx context.Context, c Candidate) error
	ExistsByEmailAndJob(ctx context.Context, email string, jobID kernel.JobID, tenantID kernel.TenantID) (bool, error)
}

package team

import (
	"context"

	"github.com/nexhire/nexhire/pkg/kernel"
)

// TeamRepository define el contrato para la persistencia de equipos
type TeamRepository interface {
	FindByID(ctx context.Context, id kernel.TeamID, tenantID kernel.TenantID) (*Team, error)
	// FindByTenant returns the flat list ordered by level then name; the
	// hierarchy builder preserves that order within each parent.
	FindByTenant(ctx context.Context, tenantID kernel.TenantID, includeInactive bool) ([]Team, error)
	Save(ctx context.Context, t Team) error
	// SaveAll persists a batch atomically (level cascades on re-parent).
	SaveAll(ctx context.Context, tenantID kernel.TenantID, teams []Team) error
}

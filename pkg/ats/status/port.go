package status

import (
	"context"

	"github.com/nexhire/nexhire/pkg/kernel"
)

// StatusRepository define el contrato para la persistencia de la taxonomía
type StatusRepository interface {
	// FindAll returns the tenant's full taxonomy, mains and subs sorted by
	// sort_order, subs nested under their main.
	FindAll(ctx context.Context, tenantID kernel.TenantID) (Taxonomy, error)
	SaveMain(ctx context.Context, m MainStatus) error
	SaveSub(ctx context.Context, tenantID kernel.TenantID, s SubStatus) error
	DeleteMain(ctx context.Context, id kernel.MainStatusID, tenantID kernel.TenantID) error
	DeleteSub(ctx context.Context, id kernel.SubStatusID, tenantID kernel.TenantID) error
}

// TaxonomyCache es la caché read-through de la taxonomía por tenant.
// "Read reflects latest committed write": se invalida en cada escritura.
type TaxonomyCache interface {
	Get(ctx context.Context, tenantID kernel.TenantID) (Taxonomy, bool, error)
	Set(ctx context.Context, tenantID kernel.TenantID, t Taxonomy) error
	Invalidate(ctx context.Context, tenantID kernel.TenantID) error
}

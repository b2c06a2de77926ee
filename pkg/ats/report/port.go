package report

import (
	"context"

	"github.com/nexhire/nexhire/pkg/kernel"
)

// ReportRepository define las consultas de agregación para reportes.
// La agregación por reclutador ocurre en la base de datos; el dominio sólo
// deriva métricas sobre los contadores ya agrupados.
type ReportRepository interface {
	// FindRecruiterRecords devuelve un registro agregado por reclutador
	// dentro del rango de fechas.
	FindRecruiterRecords(ctx context.Context, tenantID kernel.TenantID, dateRange DateRange) ([]RecruiterPerformanceRecord, error)

	// FindRecruiterRecord devuelve el registro agregado de un solo reclutador.
	FindRecruiterRecord(ctx context.Context, tenantID kernel.TenantID, recruiter string, dateRange DateRange) (*RecruiterPerformanceRecord, error)

	// FindTeamRecords devuelve registros agregados restringidos a los
	// reclutadores de un equipo.
	FindTeamRecords(ctx context.Context, tenantID kernel.TenantID, teamID kernel.TeamID, dateRange DateRange) ([]RecruiterPerformanceRecord, error)
}

package reportinfra

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/nexhire/nexhire/pkg/ats/report"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// PostgresReportRepository implementación de PostgreSQL para ReportRepository.
// La agrupación por reclutador ocurre aquí; el dominio recibe los contadores
// ya sumados sobre el rango.
type PostgresReportRepository struct {
	db *sqlx.DB
}

// NewPostgresReportRepository crea una nueva instancia del repositorio de reportes
func NewPostgresReportRepository(db *sqlx.DB) report.ReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

// performanceRow aplana los contadores para el escaneo de sqlx. El mapeo al
// registro de dominio (con sus contadores anidados) es responsabilidad de
// esta capa.
type performanceRow struct {
	Recruiter         string `db:"recruiter"`
	JobsAssigned      int    `db:"jobs_assigned"`
	ProfilesSubmitted int    `db:"profiles_submitted"`
	InternalReject    int    `db:"internal_reject"`
	SentToClient      int    `db:"sent_to_client"`
	ClientReject      int    `db:"client_reject"`
	Technical         int    `db:"technical"`
	TechnicalSelected int    `db:"technical_selected"`
	TechnicalReject   int    `db:"technical_reject"`
	L1                int    `db:"l1"`
	L1Selected        int    `db:"l1_selected"`
	L1Reject          int    `db:"l1_reject"`
	L2                int    `db:"l2"`
	L2Reject          int    `db:"l2_reject"`
	EndClient         int    `db:"end_client"`
	EndClientReject   int    `db:"end_client_reject"`
	OffersMade        int    `db:"offers_made"`
	OffersAccepted    int    `db:"offers_accepted"`
	OffersRejected    int    `db:"offers_rejected"`
	Joined            int    `db:"joined"`
	NoShow            int    `db:"no_show"`
}

const aggregateColumns = `
	recruiter,
	COALESCE(SUM(jobs_assigned), 0) AS jobs_assigned,
	COALESCE(SUM(profiles_submitted), 0) AS profiles_submitted,
	COALESCE(SUM(internal_reject), 0) AS internal_reject,
	COALESCE(SUM(sent_to_client), 0) AS sent_to_client,
	COALESCE(SUM(client_reject), 0) AS client_reject,
	COALESCE(SUM(technical), 0) AS technical,
	COALESCE(SUM(technical_selected), 0) AS technical_selected,
	COALESCE(SUM(technical_reject), 0) AS technical_reject,
	COALESCE(SUM(l1), 0) AS l1,
	COALESCE(SUM(l1_selected), 0) AS l1_selected,
	COALESCE(SUM(l1_reject), 0) AS l1_reject,
	COALESCE(SUM(l2), 0) AS l2,
	COALESCE(SUM(l2_reject), 0) AS l2_reject,
	COALESCE(SUM(end_client), 0) AS end_client,
	COALESCE(SUM(end_client_reject), 0) AS end_client_reject,
	COALESCE(SUM(offers_made), 0) AS offers_made,
	COALESCE(SUM(offers_accepted), 0) AS offers_accepted,
	COALESCE(SUM(offers_rejected), 0) AS offers_rejected,
	COALESCE(SUM(joined), 0) AS joined,
	COALESCE(SUM(no_show), 0) AS no_show`

// FindRecruiterRecords agrega los contadores diarios por reclutador en el rango
func (r *PostgresReportRepository) FindRecruiterRecords(ctx context.Context, tenantID kernel.TenantID, dateRange report.DateRange) ([]report.RecruiterPerformanceRecord, error) {
	query := `
		SELECT ` + aggregateColumns + `
		FROM recruiter_daily_counters
		WHERE tenant_id = $1
		  AND activity_date >= $2
		  AND activity_date <= $3
		GROUP BY recruiter
		ORDER BY recruiter ASC`

	var rows []performanceRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID.String(), dateRange.From, dateRange.To); err != nil {
		return nil, errx.Wrap(err, "failed to aggregate recruiter counters", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String())
	}

	return toRecords(rows), nil
}

// FindRecruiterRecord agrega los contadores de un solo reclutador en el rango
func (r *PostgresReportRepository) FindRecruiterRecord(ctx context.Context, tenantID kernel.TenantID, recruiter string, dateRange report.DateRange) (*report.RecruiterPerformanceRecord, error) {
	query := `
		SELECT ` + aggregateColumns + `
		FROM recruiter_daily_counters
		WHERE tenant_id = $1
		  AND recruiter = $2
		  AND activity_date >= $3
		  AND activity_date <= $4
		GROUP BY recruiter`

	var rows []performanceRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID.String(), recruiter, dateRange.From, dateRange.To); err != nil {
		return nil, errx.Wrap(err, "failed to aggregate recruiter counters", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String()).
			WithDetail("recruiter", recruiter)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	record := toRecord(rows[0])
	return &record, nil
}

// FindTeamRecords agrega los contadores de los reclutadores asignados al equipo
func (r *PostgresReportRepository) FindTeamRecords(ctx context.Context, tenantID kernel.TenantID, teamID kernel.TeamID, dateRange report.DateRange) ([]report.RecruiterPerformanceRecord, error) {
	query := `
		SELECT ` + aggregateColumns + `
		FROM recruiter_daily_counters
		WHERE tenant_id = $1
		  AND team_id = $2
		  AND activity_date >= $3
		  AND activity_date <= $4
		GROUP BY recruiter
		ORDER BY recruiter ASC`

	var rows []performanceRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID.String(), teamID.String(), dateRange.From, dateRange.To); err != nil {
		return nil, errx.Wrap(err, "failed to aggregate team counters", errx.TypeInternal).
			WithDetail("tenant_id", tenantID.String()).
			WithDetail("team_id", teamID.String())
	}

	return toRecords(rows), nil
}

func toRecords(rows []performanceRow) []report.RecruiterPerformanceRecord {
	records := make([]report.RecruiterPerformanceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records
}

func toRecord(row performanceRow) report.RecruiterPerformanceRecord {
	return report.RecruiterPerformanceRecord{
		Recruiter:         row.Recruiter,
		JobsAssigned:      row.JobsAssigned,
		ProfilesSubmitted: row.ProfilesSubmitted,
		InternalReject:    row.InternalReject,
		SentToClient:      row.SentToClient,
		ClientReject:      row.ClientReject,
		Interviews: report.InterviewCounters{
			Technical:         row.Technical,
			TechnicalSelected: row.TechnicalSelected,
			TechnicalReject:   row.TechnicalReject,
			L1:                row.L1,
			L1Selected:        row.L1Selected,
			L1Reject:          row.L1Reject,
			L2:                row.L2,
			L2Reject:          row.L2Reject,
			EndClient:         row.EndClient,
			EndClientReject:   row.EndClientReject,
		},
		Offers: report.OfferCounters{
			Made:     row.OffersMade,
			Accepted: row.OffersAccepted,
			Rejected: row.OffersRejected,
		},
		Joining: report.JoiningCounters{
			Joined: row.Joined,
			NoShow: row.NoShow,
		},
	}
}

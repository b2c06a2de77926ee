package report

import (
	"net/http"
	"time"

	"github.com/nexhire/nexhire/pkg/errx"
)

// ============================================================================
// Recruiter Performance
// ============================================================================
//
// A RecruiterPerformanceRecord is a pre-aggregated snapshot of one
// recruiter's counters over a caller-supplied date range. The aggregator
// consumes it read-only; the grouping query that produces it lives in infra.

// InterviewCounters son los contadores de entrevistas por ronda
type InterviewCounters struct {
	Technical         int `db:"technical" json:"technical"`
	TechnicalSelected int `db:"technical_selected" json:"technical_selected"`
	TechnicalReject   int `db:"technical_reject" json:"technical_reject"`
	L1                int `db:"l1" json:"l1"`
	L1Selected        int `db:"l1_selected" json:"l1_selected"`
	L1Reject          int `db:"l1_reject" json:"l1_reject"`
	L2                int `db:"l2" json:"l2"`
	L2Reject          int `db:"l2_reject" json:"l2_reject"`
	EndClient         int `db:"end_client" json:"end_client"`
	EndClientReject   int `db:"end_client_reject" json:"end_client_reject"`
}

// Sum es la suma de rondas que cuentan como "aceptación" de cliente:
// technical, technical_selected, l1, l1_selected, l2 y end_client.
func (ic InterviewCounters) Sum() int {
	return ic.Technical + ic.TechnicalSelected + ic.L1 + ic.L1Selected + ic.L2 + ic.EndClient
}

// OfferCounters son los contadores de ofertas
type OfferCounters struct {
	Made     int `db:"offers_made" json:"made"`
	Accepted int `db:"offers_accepted" json:"accepted"`
	Rejected int `db:"offers_rejected" json:"rejected"`
}

// JoiningCounters son los contadores de incorporación
type JoiningCounters struct {
	Joined int `db:"joined" json:"joined"`
	NoShow int `db:"no_show" json:"no_show"`
}

// RecruiterPerformanceRecord es el snapshot por recruiter
type RecruiterPerformanceRecord struct {
	Recruiter         string            `db:"recruiter" json:"recruiter"`
	JobsAssigned      int               `db:"jobs_assigned" json:"jobs_assigned"`
	ProfilesSubmitted int               `db:"profiles_submitted" json:"profiles_submitted"`
	InternalReject    int               `db:"internal_reject" json:"internal_reject"`
	SentToClient      int               `db:"sent_to_client" json:"sent_to_client"`
	ClientReject      int               `db:"client_reject" json:"client_reject"`
	Interviews        InterviewCounters `json:"interviews"`
	Offers            OfferCounters     `json:"offers"`
	Joining           JoiningCounters   `json:"joining"`
}

// DateRange delimita el periodo del snapshot
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ============================================================================
// Service DTOs
// ============================================================================

// RecruiterMetricsResponse son las métricas derivadas de un recruiter
type RecruiterMetricsResponse struct {
	Recruiter string                     `json:"recruiter"`
	Range     DateRange                  `json:"range"`
	Record    RecruiterPerformanceRecord `json:"record"`
	Metrics   []DerivedMetric            `json:"metrics"`
}

// TeamMetricsResponse son las métricas de todos los recruiters del rango
type TeamMetricsResponse struct {
	Range      DateRange                  `json:"range"`
	Recruiters []RecruiterMetricsResponse `json:"recruiters"`
	Total      int                        `json:"total"`
}

// FunnelResponse es la vista agregada del funnel en el rango
type FunnelResponse struct {
	Range  DateRange                  `json:"range"`
	Totals RecruiterPerformanceRecord `json:"totals"`
	Stages []FunnelStage              `json:"stages"`
}

// ExportResponse referencia un reporte archivado
type ExportResponse struct {
	Path       string    `json:"path"`
	Format     string    `json:"format"`
	ExportedAt time.Time `json:"exported_at"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("REPORT")

var (
	CodeInvalidDateRange  = ErrRegistry.Register("INVALID_DATE_RANGE", errx.TypeValidation, http.StatusBadRequest, "Invalid date range")
	CodeExportFailed      = ErrRegistry.Register("EXPORT_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to archive report export")
	CodeUnknownFormat     = ErrRegistry.Register("UNKNOWN_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unknown export format")
	CodeRecruiterNotFound = ErrRegistry.Register("RECRUITER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Recruiter not found in range")
)

func ErrInvalidDateRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidDateRange)
}

func ErrExportFailed() *errx.Error {
	return ErrRegistry.New(CodeExportFailed)
}

func ErrUnknownFormat() *errx.Error {
	return ErrRegistry.New(CodeUnknownFormat)
}

func ErrRecruiterNotFound() *errx.Error {
	return ErrRegistry.New(CodeRecruiterNotFound)
}

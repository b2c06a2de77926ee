package report

import (
	"fmt"
	"strings"
)

// ============================================================================
// Export Projections
// ============================================================================
//
// Both renderings are pure projections of the same DerivedMetric slice plus
// the raw record. No value is recomputed here; the two formats must stay
// renderable from identical inputs.

// ExportFormat identifica los dos formatos de export
type ExportFormat string

const (
	FormatTabular ExportFormat = "tabular"
	FormatReport  ExportFormat = "report"
)

// Render proyecta el snapshot al formato pedido.
func Render(format ExportFormat, record RecruiterPerformanceRecord, metrics []DerivedMetric) (string, error) {
	switch format {
	case FormatTabular:
		return RenderTabular(record, metrics), nil
	case FormatReport:
		return RenderReportTable(record, metrics), nil
	default:
		return "", ErrUnknownFormat().WithDetail("format", string(format))
	}
}

// RenderTabular produce el formato row-oriented: una fila por campo,
// tab-separada.
func RenderTabular(record RecruiterPerformanceRecord, metrics []DerivedMetric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "recruiter\t%s\n", record.Recruiter)
	fmt.Fprintf(&b, "jobs_assigned\t%d\n", record.JobsAssigned)
	fmt.Fprintf(&b, "profiles_submitted\t%d\n", record.ProfilesSubmitted)
	fmt.Fprintf(&b, "internal_reject\t%d\n", record.InternalReject)
	fmt.Fprintf(&b, "sent_to_client\t%d\n", record.SentToClient)
	fmt.Fprintf(&b, "client_reject\t%d\n", record.ClientReject)
	fmt.Fprintf(&b, "interviews_total\t%d\n", record.Interviews.Sum())
	fmt.Fprintf(&b, "offers_made\t%d\n", record.Offers.Made)
	fmt.Fprintf(&b, "offers_accepted\t%d\n", record.Offers.Accepted)
	fmt.Fprintf(&b, "joined\t%d\n", record.Joining.Joined)

	for _, m := range metrics {
		fmt.Fprintf(&b, "%s\t%.4f\n", m.Name, m.Value)
	}

	return b.String()
}

// RenderReportTable produce la tabla de columnas fijas del reporte.
func RenderReportTable(record RecruiterPerformanceRecord, metrics []DerivedMetric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recruiter Performance Report: %s\n", record.Recruiter)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 78))
	fmt.Fprintf(&b, "%-24s %8s %8s %8s %8s\n", "", "Submit", "ToClient", "Offers", "Joined")
	fmt.Fprintf(&b, "%-24s %8d %8d %8d %8d\n", "Totals",
		record.ProfilesSubmitted, record.SentToClient, record.Offers.Made, record.Joining.Joined)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 78))
	fmt.Fprintf(&b, "%-32s %-34s %10s\n", "Metric", "Formula", "Value")

	for _, m := range metrics {
		fmt.Fprintf(&b, "%-32s %-34s %10.4f\n", m.Name, m.Formula, m.Value)
	}

	return b.String()
}

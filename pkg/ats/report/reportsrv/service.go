package reportsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/nexhire/nexhire/pkg/ats/report"
	"github.com/nexhire/nexhire/pkg/fsx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
)

// ReportService deriva métricas y funnels sobre los snapshots agregados
type ReportService struct {
	reportRepo report.ReportRepository
	archive    fsx.FileSystem
}

// NewReportService crea una nueva instancia de ReportService
func NewReportService(reportRepo report.ReportRepository, archive fsx.FileSystem) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		archive:    archive,
	}
}

// GetRecruiterMetrics devuelve los contadores y las métricas derivadas de
// un solo reclutador en el rango.
func (s *ReportService) GetRecruiterMetrics(ctx context.Context, tenantID kernel.TenantID, recruiter string, dateRange report.DateRange) (*report.RecruiterMetricsResponse, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	record, err := s.reportRepo.FindRecruiterRecord(ctx, tenantID, recruiter, dateRange)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, report.ErrRecruiterNotFound().WithDetail("recruiter", recruiter)
	}

	return &report.RecruiterMetricsResponse{
		Recruiter: record.Recruiter,
		Range:     dateRange,
		Record:    *record,
		Metrics:   report.DeriveMetrics(*record),
	}, nil
}

// GetTeamMetrics deriva las métricas de cada reclutador del equipo.
func (s *ReportService) GetTeamMetrics(ctx context.Context, tenantID kernel.TenantID, teamID kernel.TeamID, dateRange report.DateRange) (*report.TeamMetricsResponse, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	records, err := s.reportRepo.FindTeamRecords(ctx, tenantID, teamID, dateRange)
	if err != nil {
		return nil, err
	}

	return buildTeamResponse(records, dateRange), nil
}

// GetAllRecruiterMetrics deriva las métricas de todos los reclutadores del
// tenant en el rango.
func (s *ReportService) GetAllRecruiterMetrics(ctx context.Context, tenantID kernel.TenantID, dateRange report.DateRange) (*report.TeamMetricsResponse, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	records, err := s.reportRepo.FindRecruiterRecords(ctx, tenantID, dateRange)
	if err != nil {
		return nil, err
	}

	return buildTeamResponse(records, dateRange), nil
}

// GetFunnel agrega todos los snapshots del rango en un funnel ordenado.
func (s *ReportService) GetFunnel(ctx context.Context, tenantID kernel.TenantID, dateRange report.DateRange) (*report.FunnelResponse, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}

	records, err := s.reportRepo.FindRecruiterRecords(ctx, tenantID, dateRange)
	if err != nil {
		return nil, err
	}

	totals := report.SumRecords(records)

	return &report.FunnelResponse{
		Range:  dateRange,
		Totals: totals,
		Stages: report.BuildFunnel(totals),
	}, nil
}

// ExportRecruiterReport renderiza el reporte de un reclutador y lo archiva
// en el storage configurado.
func (s *ReportService) ExportRecruiterReport(ctx context.Context, tenantID kernel.TenantID, recruiter string, format report.ExportFormat, dateRange report.DateRange) (*report.ExportResponse, error) {
	metrics, err := s.GetRecruiterMetrics(ctx, tenantID, recruiter, dateRange)
	if err != nil {
		return nil, err
	}

	rendered, err := report.Render(format, metrics.Record, metrics.Metrics)
	if err != nil {
		return nil, err
	}

	exportedAt := time.Now().UTC()
	path := exportPath(tenantID, recruiter, format, exportedAt)

	contentType := "text/plain; charset=utf-8"
	if format == report.FormatTabular {
		contentType = "text/tab-separated-values"
	}

	if err := s.archive.Write(ctx, path, []byte(rendered), contentType); err != nil {
		logx.WithFields(logx.Fields{
			"tenant_id": tenantID.String(),
			"recruiter": recruiter,
			"path":      path,
		}).Errorf("failed to archive report export: %v", err)
		return nil, report.ErrExportFailed().WithDetail("path", path)
	}

	return &report.ExportResponse{
		Path:       path,
		Format:     string(format),
		ExportedAt: exportedAt,
	}, nil
}

func buildTeamResponse(records []report.RecruiterPerformanceRecord, dateRange report.DateRange) *report.TeamMetricsResponse {
	recruiters := make([]report.RecruiterMetricsResponse, 0, len(records))
	for _, record := range records {
		recruiters = append(recruiters, report.RecruiterMetricsResponse{
			Recruiter: record.Recruiter,
			Range:     dateRange,
			Record:    record,
			Metrics:   report.DeriveMetrics(record),
		})
	}

	return &report.TeamMetricsResponse{
		Range:      dateRange,
		Recruiters: recruiters,
		Total:      len(recruiters),
	}
}

func validateRange(dateRange report.DateRange) error {
	if dateRange.From.IsZero() || dateRange.To.IsZero() {
		return report.ErrInvalidDateRange().WithMessage("Both from and to dates are required")
	}
	if dateRange.To.Before(dateRange.From) {
		return report.ErrInvalidDateRange().WithDetail("from", dateRange.From).WithDetail("to", dateRange.To)
	}
	return nil
}

func exportPath(tenantID kernel.TenantID, recruiter string, format report.ExportFormat, at time.Time) string {
	ext := "txt"
	if format == report.FormatTabular {
		ext = "tsv"
	}
	return fmt.Sprintf("reports/%s/%s/%s.%s", tenantID.String(), recruiter, at.Format("20060102T150405Z"), ext)
}

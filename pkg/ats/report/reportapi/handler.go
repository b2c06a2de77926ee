package reportapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nexhire/nexhire/pkg/ats/report"
	"github.com/nexhire/nexhire/pkg/ats/report/reportsrv"
	"github.com/nexhire/nexhire/pkg/iam"
	"github.com/nexhire/nexhire/pkg/iam/auth"
	"github.com/nexhire/nexhire/pkg/iam/scopes"
	"github.com/nexhire/nexhire/pkg/kernel"
)

type ReportHandlers struct {
	service *reportsrv.ReportService
}

func NewReportHandlers(service *reportsrv.ReportService) *ReportHandlers {
	return &ReportHandlers{service: service}
}

func (h *ReportHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	reports := router.Group("/reports", authMiddleware.Authenticate())

	reports.Get("/recruiters", authMiddleware.RequireScope(scopes.ScopeReportsView), h.GetAllRecruiterMetrics)
	reports.Get("/recruiters/:recruiter", authMiddleware.RequireScope(scopes.ScopeReportsView), h.GetRecruiterMetrics)
	reports.Get("/teams/:teamId", authMiddleware.RequireScope(scopes.ScopeReportsView), h.GetTeamMetrics)
	reports.Get("/funnel", authMiddleware.RequireScope(scopes.ScopeReportsView), h.GetFunnel)
	reports.Post("/recruiters/:recruiter/export", authMiddleware.RequireScope(scopes.ScopeReportsExport), h.ExportRecruiterReport)
}

func (h *ReportHandlers) GetAllRecruiterMetrics(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	response, err := h.service.GetAllRecruiterMetrics(c.Context(), authContext.TenantID, dateRange)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *ReportHandlers) GetRecruiterMetrics(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	response, err := h.service.GetRecruiterMetrics(c.Context(), authContext.TenantID, c.Params("recruiter"), dateRange)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *ReportHandlers) GetTeamMetrics(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	teamID := kernel.NewTeamID(c.Params("teamId"))
	response, err := h.service.GetTeamMetrics(c.Context(), authContext.TenantID, teamID, dateRange)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *ReportHandlers) GetFunnel(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	response, err := h.service.GetFunnel(c.Context(), authContext.TenantID, dateRange)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *ReportHandlers) ExportRecruiterReport(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		return err
	}

	format := report.ExportFormat(c.Query("format", string(report.FormatReport)))
	response, err := h.service.ExportRecruiterReport(c.Context(), authContext.TenantID, c.Params("recruiter"), format, dateRange)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// parseDateRange lee from/to como fechas YYYY-MM-DD. El límite superior es
// inclusivo.
func parseDateRange(c *fiber.Ctx) (report.DateRange, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return report.DateRange{}, report.ErrInvalidDateRange().WithDetail("from", c.Query("from"))
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return report.DateRange{}, report.ErrInvalidDateRange().WithDetail("to", c.Query("to"))
	}
	return report.DateRange{From: from, To: to}, nil
}

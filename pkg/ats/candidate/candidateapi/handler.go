package candidateapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nexhire/nexhire/pkg/ats/candidate"
	"github.com/nexhire/nexhire/pkg/ats/candidate/candidatesrv"
	"github.com/nexhire/nexhire/pkg/iam"
	"github.com/nexhire/nexhire/pkg/iam/auth"
	"github.com/nexhire/nexhire/pkg/iam/scopes"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/validate"
)

type CandidateHandlers struct {
	service *candidatesrv.CandidateService
}

func NewCandidateHandlers(service *candidatesrv.CandidateService) *CandidateHandlers {
	return &CandidateHandlers{service: service}
}

func (h *CandidateHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	candidates := router.Group("/candidates", authMiddleware.Authenticate())

	candidates.Get("/", authMiddleware.RequireScope(scopes.ScopeCandidatesRead), h.ListCandidates)
	candidates.Post("/", authMiddleware.RequireScope(scopes.ScopeCandidatesWrite), h.CreateCandidate)
	candidates.Get("/:id", authMiddleware.RequireScope(scopes.ScopeCandidatesRead), h.GetCandidate)
	candidates.Put("/:id/status", authMiddleware.RequireScope(scopes.ScopeCandidatesStatus), h.UpdateCandidateStatus)

	jobs := router.Group("/jobs", authMiddleware.Authenticate())
	jobs.Get("/:jobId/candidates", authMiddleware.RequireScope(scopes.ScopeCandidatesRead), h.GetCandidatesForJob)
}

func (h *CandidateHandlers) ListCandidates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	filter := parseFilter(c)
	response, err := h.service.ListCandidates(c.Context(), authContext.TenantID, filter)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *CandidateHandlers) GetCandidatesForJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	jobID := kernel.NewJobID(c.Params("jobId"))
	filter := parseFilter(c)
	response, err := h.service.GetCandidatesForJob(c.Context(), authContext.TenantID, jobID, filter)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *CandidateHandlers) GetCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	id := kernel.NewCandidateID(c.Params("id"))
	view, err := h.service.GetCandidate(c.Context(), authContext.TenantID, id)
	if err != nil {
		return err
	}

	return c.JSON(view)
}

func (h *CandidateHandlers) CreateCandidate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateCandidate(c.Context(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CandidateHandlers) UpdateCandidateStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req candidate.UpdateCandidateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	id := kernel.NewCandidateID(c.Params("id"))
	view, err := h.service.UpdateCandidateStatus(c.Context(), authContext.TenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(view)
}

// parseFilter arma el filtro desde los query params. Los tres tipos de
// predicado son independientes y se combinan con AND.
func parseFilter(c *fiber.Ctx) candidate.Filter {
	var filter candidate.Filter

	if legacy := c.Query("legacy_status"); legacy != "" {
		filter.LegacyStatus = &legacy
	}
	if mainName := c.Query("main_status"); mainName != "" {
		filter.MainStatusName = &mainName
	}

	mainIDs := c.Query("main_status_ids")
	subIDs := c.Query("sub_status_ids")
	if mainIDs != "" || subIDs != "" {
		set := &candidate.StatusIDSet{}
		for _, raw := range splitIDs(mainIDs) {
			set.MainStatusIDs = append(set.MainStatusIDs, kernel.NewMainStatusID(raw))
		}
		for _, raw := range splitIDs(subIDs) {
			set.SubStatusIDs = append(set.SubStatusIDs, kernel.NewSubStatusID(raw))
		}
		filter.StatusIDs = set
	}

	return filter
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

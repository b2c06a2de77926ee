package teamapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nexhire/nexhire/pkg/ats/team"
	"github.com/nexhire/nexhire/pkg/ats/team/teamsrv"
	"github.com/nexhire/nexhire/pkg/iam"
	"github.com/nexhire/nexhire/pkg/iam/auth"
	"github.com/nexhire/nexhire/pkg/iam/scopes"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/validate"
)

type TeamHandlers struct {
	service *teamsrv.TeamService
}

func NewTeamHandlers(service *teamsrv.TeamService) *TeamHandlers {
	return &TeamHandlers{service: service}
}

func (h *TeamHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	teams := router.Group("/teams", authMiddleware.Authenticate())

	teams.Get("/", authMiddleware.RequireScope(scopes.ScopeTeamsRead), h.GetTeams)
	teams.Get("/hierarchy", authMiddleware.RequireScope(scopes.ScopeTeamsRead), h.GetHierarchy)
	teams.Get("/parents", authMiddleware.RequireScope(scopes.ScopeTeamsRead), h.GetAvailableParents)
	teams.Post("/", authMiddleware.RequireScope(scopes.ScopeTeamsWrite), h.CreateTeam)
	teams.Put("/:id/status", authMiddleware.RequireScope(scopes.ScopeTeamsWrite), h.UpdateTeamStatus)
	teams.Put("/:id/parent", authMiddleware.RequireScope(scopes.ScopeTeamsReparent), h.ReparentTeam)
}

func (h *TeamHandlers) GetTeams(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	includeInactive := c.QueryBool("include_inactive", false)
	response, err := h.service.GetTeams(c.Context(), authContext.TenantID, includeInactive)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *TeamHandlers) GetHierarchy(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	response, err := h.service.GetHierarchy(c.Context(), authContext.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *TeamHandlers) GetAvailableParents(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	teamType := team.TeamType(c.Query("team_type"))
	response, err := h.service.GetAvailableParents(c.Context(), authContext.TenantID, teamType)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

func (h *TeamHandlers) CreateTeam(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req team.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	created, err := h.service.CreateTeam(c.Context(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TeamHandlers) UpdateTeamStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req team.UpdateTeamStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := kernel.NewTeamID(c.Params("id"))
	updated, err := h.service.UpdateTeamStatus(c.Context(), authContext.TenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *TeamHandlers) ReparentTeam(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req team.ReparentTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id := kernel.NewTeamID(c.Params("id"))
	updated, err := h.service.ReparentTeam(c.Context(), authContext.TenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

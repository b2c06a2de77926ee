package statusapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/ats/status/statussrv"
	"github.com/nexhire/nexhire/pkg/iam"
	"github.com/nexhire/nexhire/pkg/iam/auth"
	"github.com/nexhire/nexhire/pkg/iam/scopes"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/validate"
)

type StatusHandlers struct {
	service *statussrv.StatusService
}

func NewStatusHandlers(service *statussrv.StatusService) *StatusHandlers {
	return &StatusHandlers{service: service}
}

func (h *StatusHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	statuses := router.Group("/statuses", authMiddleware.Authenticate())

	statuses.Get("/", authMiddleware.RequireScope(scopes.ScopeStatusesRead), h.GetTaxonomy)
	statuses.Get("/resolve/:subId", authMiddleware.RequireScope(scopes.ScopeStatusesRead), h.ResolveSubStatus)
	statuses.Post("/", authMiddleware.RequireScope(scopes.ScopeStatusesWrite), h.CreateMainStatus)
	statuses.Post("/sub", authMiddleware.RequireScope(scopes.ScopeStatusesWrite), h.CreateSubStatus)
	statuses.Put("/:id/order", authMiddleware.RequireScope(scopes.ScopeStatusesWrite), h.ReorderMainStatus)
	statuses.Delete("/sub/:subId", authMiddleware.RequireScope(scopes.ScopeStatusesWrite), h.DeleteSubStatus)
	statuses.Delete("/:id", authMiddleware.RequireScope(scopes.ScopeStatusesWrite), h.DeleteMainStatus)
}

func (h *StatusHandlers) GetTaxonomy(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	taxonomy, err := h.service.GetTaxonomy(c.Context(), authContext.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(status.TaxonomyResponse{
		Statuses: taxonomy,
		Total:    len(taxonomy),
	})
}

func (h *StatusHandlers) ResolveSubStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	subID := kernel.NewSubStatusID(c.Params("subId"))
	pair, err := h.service.ResolveSubStatus(c.Context(), authContext.TenantID, subID)
	if err != nil {
		return err
	}

	return c.JSON(pair)
}

func (h *StatusHandlers) CreateMainStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req status.CreateMainStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	main, err := h.service.CreateMainStatus(c.Context(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(main)
}

func (h *StatusHandlers) CreateSubStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req status.CreateSubStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	sub, err := h.service.CreateSubStatus(c.Context(), authContext.TenantID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (h *StatusHandlers) ReorderMainStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	var req status.ReorderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	id := kernel.NewMainStatusID(c.Params("id"))
	main, err := h.service.ReorderMainStatus(c.Context(), authContext.TenantID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(main)
}

func (h *StatusHandlers) DeleteSubStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	subID := kernel.NewSubStatusID(c.Params("subId"))
	if err := h.service.DeleteSubStatus(c.Context(), authContext.TenantID, subID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Sub status deleted successfully"})
}

func (h *StatusHandlers) DeleteMainStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	id := kernel.NewMainStatusID(c.Params("id"))
	if err := h.service.DeleteMainStatus(c.Context(), authContext.TenantID, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Main status deleted successfully"})
}

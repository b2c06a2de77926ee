package statussrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream"
)

// StatusService proporciona operaciones de negocio para la taxonomía de estados
type StatusService struct {
	statusRepo status.StatusRepository
	cache      status.TaxonomyCache
	notifier   stream.Notifier
}

// NewStatusService crea una nueva instancia del servicio de estados
func NewStatusService(statusRepo status.StatusRepository, cache status.TaxonomyCache, notifier stream.Notifier) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		cache:      cache,
		notifier:   notifier,
	}
}

// GetTaxonomy obtiene la taxonomía completa del tenant, cacheada.
func (s *StatusService) GetTaxonomy(ctx context.Context, tenantID kernel.TenantID) (status.Taxonomy, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, tenantID); err == nil && ok {
			return cached, nil
		} else if err != nil {
			// Cache failures degrade to a repository read.
			logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
				Warnf("taxonomy cache read failed: %v", err)
		}
	}

	taxonomy, err := s.statusRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load status taxonomy", errx.TypeInternal)
	}
	taxonomy.Sort()

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, taxonomy); err != nil {
			logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
				Warnf("taxonomy cache write failed: %v", err)
		}
	}

	return taxonomy, nil
}

// ResolveSubStatus busca el par (main, sub) para un sub-estado.
func (s *StatusService) ResolveSubStatus(ctx context.Context, tenantID kernel.TenantID, subID kernel.SubStatusID) (*status.ResolvedPair, error) {
	taxonomy, err := s.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return taxonomy.Resolve(subID)
}

// CreateMainStatus crea un estado principal
func (s *StatusService) CreateMainStatus(ctx context.Context, tenantID kernel.TenantID, req status.CreateMainStatusRequest) (*status.MainStatus, error) {
	taxonomy, err := s.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, exists := taxonomy.FindMainByName(req.Name); exists {
		return nil, status.ErrStatusNameTaken().WithDetail("name", req.Name)
	}

	now := time.Now()
	main := status.MainStatus{
		ID:        kernel.NewMainStatusID(uuid.NewString()),
		TenantID:  tenantID,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.statusRepo.SaveMain(ctx, main); err != nil {
		return nil, errx.Wrap(err, "failed to save main status", errx.TypeInternal)
	}
	s.afterWrite(ctx, tenantID, main.ID.String())

	return &main, nil
}

// CreateSubStatus crea un sub-estado bajo un estado principal existente
func (s *StatusService) CreateSubStatus(ctx context.Context, tenantID kernel.TenantID, req status.CreateSubStatusRequest) (*status.SubStatus, error) {
	taxonomy, err := s.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// Every sub status must hang off an existing main status.
	if _, err := taxonomy.FindMainByID(req.MainStatusID); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := status.SubStatus{
		ID:           kernel.NewSubStatusID(uuid.NewString()),
		MainStatusID: req.MainStatusID,
		Name:         req.Name,
		Color:        req.Color,
		SortOrder:    req.SortOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.statusRepo.SaveSub(ctx, tenantID, sub); err != nil {
		return nil, errx.Wrap(err, "failed to save sub status", errx.TypeInternal)
	}
	s.afterWrite(ctx, tenantID, sub.ID.String())

	return &sub, nil
}

// ReorderMainStatus actualiza el sort_order de un estado principal.
// Last-write-wins a nivel de almacenamiento.
func (s *StatusService) ReorderMainStatus(ctx context.Context, tenantID kernel.TenantID, id kernel.MainStatusID, req status.ReorderStatusRequest) (*status.MainStatus, error) {
	taxonomy, err := s.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	main, err := taxonomy.FindMainByID(id)
	if err != nil {
		return nil, err
	}

	main.SortOrder = req.SortOrder
	main.UpdatedAt = time.Now()
	if err := s.statusRepo.SaveMain(ctx, *main); err != nil {
		return nil, errx.Wrap(err, "failed to reorder main status", errx.TypeInternal)
	}
	s.afterWrite(ctx, tenantID, main.ID.String())

	return main, nil
}

// DeleteSubStatus elimina un sub-estado del tenant.
func (s *StatusService) DeleteSubStatus(ctx context.Context, tenantID kernel.TenantID, id kernel.SubStatusID) error {
	if err := s.statusRepo.DeleteSub(ctx, id, tenantID); err != nil {
		return err
	}
	s.afterWrite(ctx, tenantID, id.String())
	return nil
}

// DeleteMainStatus elimina un estado principal sin sub-estados.
// Los sub-estados deben eliminarse primero; así ningún candidato queda
// apuntando a un par (main, sub) a medio borrar.
func (s *StatusService) DeleteMainStatus(ctx context.Context, tenantID kernel.TenantID, id kernel.MainStatusID) error {
	taxonomy, err := s.GetTaxonomy(ctx, tenantID)
	if err != nil {
		return err
	}
	main, err := taxonomy.FindMainByID(id)
	if err != nil {
		return err
	}
	if len(main.SubStatuses) > 0 {
		return status.ErrMainStatusInUse().
			WithDetail("main_status_id", id.String()).
			WithDetail("sub_statuses", len(main.SubStatuses))
	}

	if err := s.statusRepo.DeleteMain(ctx, id, tenantID); err != nil {
		return err
	}
	s.afterWrite(ctx, tenantID, id.String())
	return nil
}

// afterWrite invalida la caché y anuncia el cambio. Los consumidores
// re-leen la taxonomía al recibir el evento.
func (s *StatusService) afterWrite(ctx context.Context, tenantID kernel.TenantID, entityID string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tenantID); err != nil {
			logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
				Warnf("taxonomy cache invalidation failed: %v", err)
		}
	}
	if s.notifier != nil {
		event := stream.ChangeEvent{
			Topic:    stream.TopicStatuses,
			TenantID: tenantID,
			EntityID: entityID,
		}
		if err := s.notifier.Publish(ctx, event); err != nil {
			logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
				Warnf("status change publish failed: %v", err)
		}
	}
}

package statusinfra

import (
	"context"
	"sync"

	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream"
)

// CacheRefresher mantiene la caché de taxonomías caliente: escucha los
// eventos de cambio de estados y re-lee la taxonomía afectada. Cada evento
// dispara un re-fetch completo; nunca se aplica un diff incremental. Las
// respuestas de fetches superados por un evento posterior se descartan.
type CacheRefresher struct {
	statusRepo status.StatusRepository
	cache      status.TaxonomyCache
	subscriber stream.BroadcastSubscriber

	mu    sync.Mutex
	gates map[kernel.TenantID]*stream.Gate
}

// NewCacheRefresher crea una nueva instancia de CacheRefresher
func NewCacheRefresher(statusRepo status.StatusRepository, cache status.TaxonomyCache, subscriber stream.BroadcastSubscriber) *CacheRefresher {
	return &CacheRefresher{
		statusRepo: statusRepo,
		cache:      cache,
		subscriber: subscriber,
		gates:      make(map[kernel.TenantID]*stream.Gate),
	}
}

// Start consume eventos hasta que el contexto termine.
func (r *CacheRefresher) Start(ctx context.Context) {
	events, cancel, err := r.subscriber.SubscribeAll(ctx, stream.TopicStatuses)
	if err != nil {
		logx.Errorf("cache refresher failed to subscribe: %v", err)
		return
	}
	defer cancel()

	logx.Info("Taxonomy cache refresher started")

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			go r.refresh(ctx, event.TenantID)
		case <-ctx.Done():
			return
		}
	}
}

func (r *CacheRefresher) refresh(ctx context.Context, tenantID kernel.TenantID) {
	gate := r.gateFor(tenantID)
	generation := gate.Begin(stream.TopicStatuses)

	taxonomy, err := r.statusRepo.FindAll(ctx, tenantID)
	if err != nil {
		logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
			Warnf("taxonomy refresh fetch failed: %v", err)
		return
	}

	// Un evento posterior ya lanzó otro fetch; esta respuesta está obsoleta.
	if !gate.Commit(stream.TopicStatuses, generation) {
		logx.WithFields(logx.Fields{
			"tenant_id":  tenantID.String(),
			"generation": generation,
		}).Debug("discarding superseded taxonomy fetch")
		return
	}

	if err := r.cache.Set(ctx, tenantID, taxonomy); err != nil {
		logx.WithFields(logx.Fields{"tenant_id": tenantID.String()}).
			Warnf("taxonomy refresh cache write failed: %v", err)
	}
}

func (r *CacheRefresher) gateFor(tenantID kernel.TenantID) *stream.Gate {
	r.mu.Lock()
	defer r.mu.Unlock()
	gate, ok := r.gates[tenantID]
	if !ok {
		gate = stream.NewGate()
		r.gates[tenantID] = gate
	}
	return gate
}

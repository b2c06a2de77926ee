package stream

import (
	"context"
	"sync"
	"time"

	"github.com/nexhire/nexhire/pkg/kernel"
)

// ============================================================================
// Change stream
// ============================================================================
//
// Writes publish row-change events; interested consumers re-fetch on receipt
// (push-triggered re-fetch, never an incremental diff). Events carry a
// per-topic monotonic generation so a consumer can discard a fetch response
// that was superseded while in flight.

// Topic identifica la colección que cambió
type Topic string

const (
	TopicCandidates Topic = "candidates"
	TopicTeams      Topic = "teams"
	TopicStatuses   Topic = "statuses"
)

// ChangeEvent es la notificación de cambio de una fila
type ChangeEvent struct {
	Topic      Topic           `json:"topic"`
	TenantID   kernel.TenantID `json:"tenant_id"`
	EntityID   string          `json:"entity_id"`
	Generation uint64          `json:"generation"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Notifier publica eventos de cambio de filas
type Notifier interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

// Subscriber entrega eventos de cambio a un consumidor
type Subscriber interface {
	// Subscribe returns a channel of events for the tenant's topics plus a
	// cancel func. The channel closes on cancel or context end.
	Subscribe(ctx context.Context, tenantID kernel.TenantID, topics ...Topic) (<-chan ChangeEvent, func(), error)
}

// BroadcastSubscriber entrega los eventos de un topic para todos los tenants.
// Lo usan los workers de proceso (p.ej. el refresco de caché) que no conocen
// la lista de tenants por adelantado.
type BroadcastSubscriber interface {
	SubscribeAll(ctx context.Context, topics ...Topic) (<-chan ChangeEvent, func(), error)
}

// ============================================================================
// Generation gate
// ============================================================================

// Gate emite generaciones monotónicas por topic. Un consumidor pide una
// generación en Begin antes de lanzar un fetch y sólo comete la respuesta si
// Commit confirma que sigue siendo la última: las respuestas tardías de
// fetches superados se descartan.
type Gate struct {
	mu     sync.Mutex
	latest map[Topic]uint64
}

func NewGate() *Gate {
	return &Gate{latest: make(map[Topic]uint64)}
}

// Begin emite la siguiente generación para el topic.
func (g *Gate) Begin(topic Topic) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[topic]++
	return g.latest[topic]
}

// Commit reporta si la generación dada sigue siendo la última del topic.
// Una respuesta con Commit == false llegó tarde y debe descartarse.
func (g *Gate) Commit(topic Topic, generation uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[topic] == generation
}

// Latest devuelve la última generación emitida para el topic.
func (g *Gate) Latest(topic Topic) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[topic]
}

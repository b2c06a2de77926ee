package streaminfra

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream"
	"github.com/redis/go-redis/v9"
)

// RedisNotifier publica eventos de cambio vía Redis pub/sub.
type RedisNotifier struct {
	client     *redis.Client
	generation atomic.Uint64
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func channel(tenantID kernel.TenantID, topic stream.Topic) string {
	return "nexhire:changes:" + tenantID.String() + ":" + string(topic)
}

// Publish estampa generación y timestamp si faltan y publica el evento.
func (n *RedisNotifier) Publish(ctx context.Context, event stream.ChangeEvent) error {
	if event.Generation == 0 {
		event.Generation = n.generation.Add(1)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errx.Wrap(err, "failed to marshal change event", errx.TypeInternal)
	}

	if err := n.client.Publish(ctx, channel(event.TenantID, event.Topic), payload).Err(); err != nil {
		return errx.Wrap(err, "failed to publish change event", errx.TypeExternal).
			WithDetail("topic", string(event.Topic)).
			WithDetail("tenant_id", event.TenantID.String())
	}
	return nil
}

// Subscribe entrega los eventos de los topics del tenant por un canal.
func (n *RedisNotifier) Subscribe(ctx context.Context, tenantID kernel.TenantID, topics ...stream.Topic) (<-chan stream.ChangeEvent, func(), error) {
	channels := make([]string, 0, len(topics))
	for _, t := range topics {
		channels = append(channels, channel(tenantID, t))
	}

	pubsub := n.client.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, errx.Wrap(err, "failed to subscribe to change channels", errx.TypeExternal).
			WithDetail("tenant_id", tenantID.String())
	}

	out := make(chan stream.ChangeEvent)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event stream.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logx.Warnf("dropping malformed change event: %v", err)
					continue
				}
				select {
				case out <- event:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, stopFunc(done, pubsub), nil
}

// SubscribeAll entrega los eventos del topic de todos los tenants usando una
// suscripción por patrón.
func (n *RedisNotifier) SubscribeAll(ctx context.Context, topics ...stream.Topic) (<-chan stream.ChangeEvent, func(), error) {
	patterns := make([]string, 0, len(topics))
	for _, t := range topics {
		patterns = append(patterns, "nexhire:changes:*:"+string(t))
	}

	pubsub := n.client.PSubscribe(ctx, patterns...)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, errx.Wrap(err, "failed to subscribe to change patterns", errx.TypeExternal)
	}

	out := make(chan stream.ChangeEvent)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event stream.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logx.Warnf("dropping malformed change event: %v", err)
					continue
				}
				select {
				case out <- event:
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, stopFunc(done, pubsub), nil
}

// stopFunc cierra la suscripción una sola vez; cancelar dos veces es un no-op.
func stopFunc(done chan struct{}, pubsub *redis.PubSub) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}
}

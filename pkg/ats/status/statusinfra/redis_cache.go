package statusinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/redis/go-redis/v9"
)

// RedisTaxonomyCache cachea la taxonomía por tenant en Redis.
type RedisTaxonomyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTaxonomyCache crea una nueva caché de taxonomía sobre Redis
func NewRedisTaxonomyCache(client *redis.Client, ttl time.Duration) *RedisTaxonomyCache {
	return &RedisTaxonomyCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisTaxonomyCache) key(tenantID kernel.TenantID) string {
	return "nexhire:taxonomy:" + tenantID.String()
}

func (c *RedisTaxonomyCache) Get(ctx context.Context, tenantID kernel.TenantID) (status.Taxonomy, bool, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errx.Wrap(err, "failed to read taxonomy cache", errx.TypeExternal).
			WithDetail("tenant_id", tenantID.String())
	}

	var taxonomy status.Taxonomy
	if err := json.Unmarshal(data, &taxonomy); err != nil {
		// Corrupt entry: treat as a miss, it will be overwritten.
		return nil, false, nil
	}
	return taxonomy, true, nil
}

func (c *RedisTaxonomyCache) Set(ctx context.Context, tenantID kernel.TenantID, t status.Taxonomy) error {
	data, err := json.Marshal(t)
	if err != nil {
		return errx.Wrap(err, "failed to marshal taxonomy", errx.TypeInternal)
	}

	if err := c.client.Set(ctx, c.key(tenantID), data, c.ttl).Err(); err != nil {
		return errx.Wrap(err, "failed to write taxonomy cache", errx.TypeExternal).
			WithDetail("tenant_id", tenantID.String())
	}
	return nil
}

func (c *RedisTaxonomyCache) Invalidate(ctx context.Context, tenantID kernel.TenantID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return errx.Wrap(err, "failed to invalidate taxonomy cache", errx.TypeExternal).
			WithDetail("tenant_id", tenantID.String())
	}
	return nil
}

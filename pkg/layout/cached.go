package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/webgraph/pkg/cache"
)

// Cached returns the mapping stored under key, or computes it with compute
// and stores the result for ttl. The boolean reports a cache hit.
// Cache read failures fall through to compute; write failures are returned
// together with the computed mapping.
func Cached(ctx context.Context, c cache.Cache, key string, ttl time.Duration, compute func() (Mapping, error)) (Mapping, bool, error) {
	if c == nil {
		c = cache.NewNullCache()
	}
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		if m, err := UnmarshalMapping(data); err == nil {
			return m, true, nil
		}
	}

	m, err := compute()
	if err != nil {
		return nil, false, err
	}
	data, err := MarshalMapping(m)
	if err != nil {
		return m, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return m, false, fmt.Errorf("store layout: %w", err)
	}
	return m, false, nil
}

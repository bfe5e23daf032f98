package paramstore

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const DefaultCacheTTL = 15 * time.Minute

// CachedGetter keeps successful lookups for a fixed TTL so a rotated secret is
// picked up without a redeploy. Errors are never cached. Concurrent misses for
// the same name share one upstream call.
type CachedGetter struct {
	next  Getter
	cache *cache.Cache
	group singleflight.Group
}

// NewCachedGetter wraps next with a TTL cache. A non-positive ttl uses
// DefaultCacheTTL.
func NewCachedGetter(next Getter, ttl time.Duration) (*CachedGetter, error) {
	if next == nil {
		return nil, errors.New("paramstore: cached getter needs a backing getter")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedGetter{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}, nil
}

// GetParameter serves name from the cache or joins a single shared lookup.
// The shared lookup is detached from any one caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (g *CachedGetter) GetParameter(ctx context.Context, name string) (string, error) {
	if v, ok := g.cache.Get(name); ok {
		return v.(string), nil
	}
	ch := g.group.DoChan(name, func() (any, error) {
		val, err := g.next.GetParameter(context.WithoutCancel(ctx), name)
		if err != nil {
			return "", err
		}
		g.cache.SetDefault(name, val)
		return val, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

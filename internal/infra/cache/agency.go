package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/plura/internal/domain"
)

const agencyTTL = 60 * time.Second

// Memcache is the subset of *memcache.Client used by AgencyCache.
type Memcache interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

type AgencyCache struct {
	mc Memcache
}

func NewAgencyCache(mc Memcache) *AgencyCache {
	return &AgencyCache{mc: mc}
}

func agencyKey(id string) string {
	return "agency:" + strconv.FormatUint(xxh3.HashString(id), 16)
}

func (c *AgencyCache) Get(ctx context.Context, id string) (domain.Agency, bool) {
	item, err := c.mc.Get(agencyKey(id))
	if err != nil {
		if err != memcache.ErrCacheMiss {
			slog.WarnContext(ctx, "agency cache read failed",
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
		return domain.Agency{}, false
	}

	var agency domain.Agency
	if err := json.Unmarshal(item.Value, &agency); err != nil {
		return domain.Agency{}, false
	}
	if agency.ID != id {
		// xxh3 collision
		return domain.Agency{}, false
	}
	return agency, true
}

func (c *AgencyCache) Set(ctx context.Context, agency domain.Agency) {
	value, err := json.Marshal(agency)
	if err != nil {
		return
	}
	err = c.mc.Set(&memcache.Item{
		Key:        agencyKey(agency.ID),
		Value:      value,
		Expiration: int32(agencyTTL.Seconds()),
	})
	if err != nil {
		slog.WarnContext(ctx, "agency cache write failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

func (c *AgencyCache) Invalidate(ctx context.Context, id string) {
	err := c.mc.Delete(agencyKey(id))
	if err != nil && err != memcache.ErrCacheMiss {
		slog.WarnContext(ctx, "agency cache invalidation failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

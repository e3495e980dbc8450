package providers

import (
	"tabsleep/internal/structures"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds rendered JSON responses. Entries are dropped
// by the controller that owns them whenever the underlying state changes.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
}

// ResponseCache is a freecache segment that reports hits and misses.
type ResponseCache struct {
	entries    *freecache.Cache
	ttlSeconds int
	metrics    MetricsProviderInterface
}

// NewCacheProvider returns a cache that never hits when caching is off, so
// no phantom misses are recorded either.
func NewCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return disabledCache{}
	}

	ttlSeconds := int(conf.Cache.TTL.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}
	logger.Infof(TypeApp, "Response cache: %dMB, entries live %ds", conf.Cache.Size, ttlSeconds)

	return &ResponseCache{
		entries:    freecache.NewCache(conf.Cache.Size << 20),
		ttlSeconds: ttlSeconds,
		metrics:    metrics,
	}
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	body, err := c.entries.Get([]byte(key))
	if err != nil {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return body, true
}

func (c *ResponseCache) Set(key string, value []byte) {
	// Only fails for entries larger than 1/1024 of the cache; those are served uncached.
	_ = c.entries.Set([]byte(key), value, c.ttlSeconds)
}

func (c *ResponseCache) Del(key string) {
	c.entries.Del([]byte(key))
}

type disabledCache struct{}

func (disabledCache) Get(string) ([]byte, bool) { return nil, false }
func (disabledCache) Set(string, []byte)        {}
func (disabledCache) Del(string)                {}

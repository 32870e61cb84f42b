package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache is a capacity-bounded LRU with per-key expiry.
type MemoryCache struct {
	items *ttlcache.Cache[string, []byte]
}

func NewMemoryCache(capacity uint64) *MemoryCache {
	opts := []ttlcache.Option[string, []byte]{
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, []byte](capacity))
	}
	items := ttlcache.New[string, []byte](opts...)
	go items.Start()
	return &MemoryCache{items: items}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	item := m.items.Get(key)
	if item == nil {
		return nil, ErrMiss
	}
	val := item.Value()
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// SetWithExpiry stores a copy of value. A ttl <= 0 keeps the entry until it
// is evicted or deleted.
func (m *MemoryCache) SetWithExpiry(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	val := make([]byte, len(value))
	copy(val, value)
	m.items.Set(key, val, ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	return m.items.Has(key), nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

func (m *MemoryCache) Len() int {
	return m.items.Len()
}

// Close stops the expiry goroutine.
func (m *MemoryCache) Close() error {
	m.items.Stop()
	return nil
}

package sheet

import (
	"context"
	"sync"
	"time"

	"github.com/diarioapp/diario/internal/store"
)

// Cache holds the last fetched table together with its fetch time. A fixed
// TTL bounds request volume; writes do not invalidate it, so a save may not
// show up in reads until the window elapses.
type Cache struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	table     store.Table
	fetchedAt time.Time
	filled    bool
}

// NewCache creates an empty cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns the cached table if it is still within the TTL.
func (c *Cache) Get() (store.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled || c.now().Sub(c.fetchedAt) >= c.ttl {
		return store.Table{}, false
	}
	return c.table, true
}

// Put stores a freshly fetched table, stamping it with the current time.
func (c *Cache) Put(t store.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = t
	c.fetchedAt = c.now()
	c.filled = true
}

// CachedReader wraps a TableReader with a Cache. Fetch errors are not cached.
type CachedReader struct {
	inner store.TableReader
	cache *Cache
}

// NewCachedReader wraps reader with a TTL cache.
func NewCachedReader(reader store.TableReader, ttl time.Duration) *CachedReader {
	return &CachedReader{inner: reader, cache: NewCache(ttl)}
}

// ReadTable returns the cached table when fresh, otherwise fetches and
// refreshes the cache.
func (r *CachedReader) ReadTable(ctx context.Context) (store.Table, error) {
	if t, ok := r.cache.Get(); ok {
		return t, nil
	}
	t, err := r.inner.ReadTable(ctx)
	if err != nil {
		return store.Table{}, err
	}
	r.cache.Put(t)
	return t, nil
}

// Package catalog layers an in-memory, TTL-bounded product cache over the
// persistence stack. Scans from the handheld and the register hit the same
// few products over and over; most lookups never leave the process.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

// CachedRepo wraps a product repository with an in-memory TTL cache and
// singleflight de-duplication of concurrent misses. Entries expire after the
// TTL; staleness up to the TTL is accepted, matching the non-authoritative
// role of cart snapshots.
type CachedRepo struct {
	products domain.ProductRepository
	clock    clockwork.Clock
	ttl      time.Duration

	mu      sync.RWMutex
	byID    map[string]*cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	product   domain.Product
	expiresAt time.Time
}

// NewCachedRepo creates the cache layer. The backing repository may itself be
// the Redis read-through decorator.
func NewCachedRepo(products domain.ProductRepository, ttl time.Duration, clock clockwork.Clock) *CachedRepo {
	return &CachedRepo{
		products: products,
		clock:    clock,
		ttl:      ttl,
		byID:     make(map[string]*cacheEntry),
	}
}

func (c *CachedRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := c.lookup(id); ok {
		metrics.ProductCacheMemoryHits.Inc()
		return p, nil
	}

	// Collapse concurrent misses for the same product into one fetch.
	v, err, _ := c.group.Do(id, func() (any, error) {
		if p, ok := c.lookup(id); ok {
			return p, nil
		}
		p, err := c.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(*p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// GetByBarcode is not memoized separately: it resolves through the backing
// repository and primes the ID cache with the result.
func (c *CachedRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	p, err := c.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	c.store(*p)
	return p, nil
}

func (c *CachedRepo) List(ctx context.Context) ([]domain.Product, error) {
	return c.products.List(ctx)
}

func (c *CachedRepo) Create(ctx context.Context, p *domain.Product) error {
	return c.products.Create(ctx, p)
}

func (c *CachedRepo) Update(ctx context.Context, p *domain.Product) error {
	if err := c.products.Update(ctx, p); err != nil {
		return err
	}
	c.Invalidate(p.ID)
	return nil
}

func (c *CachedRepo) Delete(ctx context.Context, id string) error {
	if err := c.products.Delete(ctx, id); err != nil {
		return err
	}
	c.Invalidate(id)
	return nil
}

// Invalidate drops a product from the cache, forcing a fresh read.
func (c *CachedRepo) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, id)
}

// Size returns the current number of entries, including expired ones awaiting
// eviction.
func (c *CachedRepo) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// EvictExpired removes expired entries and returns the count evicted.
func (c *CachedRepo) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for id, entry := range c.byID {
		if now.After(entry.expiresAt) {
			delete(c.byID, id)
			evicted++
		}
	}
	return evicted
}

// StartEvictionTimer runs periodic eviction in the background and returns a
// stop function.
func (c *CachedRepo) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if evicted := c.EvictExpired(); evicted > 0 {
					slog.Debug("Evicted expired product cache entries",
						"count", evicted, "remaining", c.Size())
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

func (c *CachedRepo) lookup(id string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.byID[id]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}
	p := entry.product
	return &p, true
}

func (c *CachedRepo) store(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[p.ID] = &cacheEntry{product: p, expiresAt: c.clock.Now().Add(c.ttl)}
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

const (
	productCachePrefix = "product_cache:"
	barcodeKeyPrefix   = "product_barcode:"
	productCacheTTL    = 1 * time.Hour
)

// ProductCacheRepo provides read-through product caching: Redis → PostgreSQL.
// Redis is best-effort only; any Redis failure falls through to the catalog
// repository, so a dead cache degrades to direct database reads.
//
// Writes invalidate rather than update, keeping the cache a pure read path.
type ProductCacheRepo struct {
	rdb      goredis.Cmdable
	products domain.ProductRepository
}

// NewProductCacheRepo wraps a product repository with Redis caching.
func NewProductCacheRepo(rdb goredis.Cmdable, products domain.ProductRepository) *ProductCacheRepo {
	return &ProductCacheRepo{rdb: rdb, products: products}
}

func (r *ProductCacheRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productCachePrefix + id

	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err != nil {
			slog.Warn("Failed to unmarshal cached product, falling through to PostgreSQL",
				"product_id", id, "error", err)
		} else {
			metrics.ProductCacheRedisHits.Inc()
			return &p, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		slog.Warn("Redis product cache GET failed, falling through to PostgreSQL",
			"product_id", id, "error", err)
	}

	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.ProductCachePostgresHits.Inc()

	r.populate(ctx, key, p)
	return p, nil
}

// GetByBarcode caches the barcode→product mapping under its own key: the
// scanner path hits this on every scan.
func (r *ProductCacheRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	key := barcodeKeyPrefix + barcode

	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			metrics.ProductCacheRedisHits.Inc()
			return &p, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		slog.Warn("Redis product cache GET failed, falling through to PostgreSQL",
			"barcode", barcode, "error", err)
	}

	p, err := r.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	metrics.ProductCachePostgresHits.Inc()

	r.populate(ctx, key, p)
	return p, nil
}

// List is not cached: it serves the admin grid, not the scan path.
func (r *ProductCacheRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.List(ctx)
}

func (r *ProductCacheRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.products.Create(ctx, p)
}

func (r *ProductCacheRepo) Update(ctx context.Context, p *domain.Product) error {
	if err := r.products.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p)
	return nil
}

func (r *ProductCacheRepo) Delete(ctx context.Context, id string) error {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.products.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, p)
	return nil
}

func (r *ProductCacheRepo) populate(ctx context.Context, key string, p *domain.Product) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, encoded, productCacheTTL).Err(); err != nil {
		slog.Warn("Failed to populate Redis product cache", "key", key, "error", err)
	}
}

func (r *ProductCacheRepo) invalidate(ctx context.Context, p *domain.Product) {
	keys := []string{productCachePrefix + p.ID}
	if p.Barcode != "" {
		keys = append(keys, barcodeKeyPrefix+p.Barcode)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Failed to invalidate Redis product cache",
			"product_id", p.ID, "error", fmt.Errorf("redis DEL: %w", err))
	}
}

package services

import (
	"context"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	"strconv"
	"time"
)

const (
	offersKey       = "offers"
	averageKey      = "average"
	salaryGroupsKey = "salary_groups"
)

// CachedStats keeps backend aggregates for a short time. A zero ttl turns caching off.
type CachedStats struct {
	source statsSource
	cache  *gocache.Cache
}

func NewCachedStats(source statsSource, ttl time.Duration) *CachedStats {
	var cache *gocache.Cache
	if ttl > 0 {
		cache = gocache.New(ttl, 2*ttl)
	}
	return &CachedStats{source: source, cache: cache}
}

func (c *CachedStats) GetOffers(ctx context.Context) ([]models.Offer, error) {
	return cached(c, offersKey, func() ([]models.Offer, error) {
		return c.source.GetOffers(ctx)
	})
}

func (c *CachedStats) GetAverageSalary(ctx context.Context, max *int) (float64, error) {
	key := averageKey
	if max != nil {
		key += ":max=" + strconv.Itoa(*max)
	}
	return cached(c, key, func() (float64, error) {
		return c.source.GetAverageSalary(ctx, max)
	})
}

func (c *CachedStats) GetSalaryGroups(ctx context.Context) ([]models.SalaryGroup, error) {
	return cached(c, salaryGroupsKey, func() ([]models.SalaryGroup, error) {
		return c.source.GetSalaryGroups(ctx)
	})
}

// Flush drops everything cached so far.
func (c *CachedStats) Flush() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

func cached[T any](c *CachedStats, key string, load func() (T, error)) (T, error) {
	if c.cache == nil {
		return load()
	}

	if value, found := c.cache.Get(key); found {
		metrics.StatsCacheHits.WithLabelValues(key).Inc()
		return value.(T), nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	c.cache.Set(key, value, gocache.DefaultExpiration)
	return value, nil
}

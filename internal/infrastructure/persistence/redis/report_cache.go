package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/pkg/circuitbreaker"
)

// TTLReport is the default lifetime of cached reports.
const TTLReport = 5 * time.Minute

// ReportCache caches the global report and personal schedules. Entries are
// computed from the live registry and dropped as a group when it changes.
//
// Calls go through a circuit breaker. A failed invalidation marks the cache
// stale: reads miss until a later invalidation succeeds, so entries written
// before the change are never served after it.
type ReportCache struct {
	cache   *Cache
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	stale   atomic.Bool
}

// NewReportCache creates a ReportCache. A non-positive ttl uses TTLReport.
func NewReportCache(cache *Cache, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = TTLReport
	}
	breaker := circuitbreaker.CacheBreaker(nil,
		circuitbreaker.WithIsFailure(func(err error) bool { return !errors.Is(err, ErrCacheMiss) }),
	)
	return &ReportCache{cache: cache, ttl: ttl, breaker: breaker}
}

func (c *ReportCache) reportKey() string {
	return c.cache.Key("report", "global")
}

func (c *ReportCache) scheduleKey(owner string) string {
	return c.cache.Key("report", "schedule", owner)
}

// fresh retries a pending invalidation.
func (c *ReportCache) fresh(ctx context.Context) error {
	if !c.stale.Load() {
		return nil
	}
	return c.Invalidate(ctx)
}

func (c *ReportCache) get(ctx context.Context, key string, dest any) (bool, error) {
	if err := c.fresh(ctx); err != nil {
		return false, err
	}
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.cache.Get(ctx, key, dest)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrCacheMiss):
		return false, nil
	default:
		return false, err
	}
}

func (c *ReportCache) set(ctx context.Context, key string, value any) error {
	if err := c.fresh(ctx); err != nil {
		return err
	}
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.cache.Set(ctx, key, value, c.ttl)
	})
}

// GetReport returns the cached global report, if present.
func (c *ReportCache) GetReport(ctx context.Context) (academic.GlobalReport, bool, error) {
	var report academic.GlobalReport
	found, err := c.get(ctx, c.reportKey(), &report)
	return report, found, err
}

// SetReport caches the global report.
func (c *ReportCache) SetReport(ctx context.Context, report academic.GlobalReport) error {
	return c.set(ctx, c.reportKey(), report)
}

// GetSchedule returns a cached schedule. owner is "student:<id>" or
// "professor:<id>".
func (c *ReportCache) GetSchedule(ctx context.Context, owner string) ([]academic.ScheduleEntry, bool, error) {
	var entries []academic.ScheduleEntry
	found, err := c.get(ctx, c.scheduleKey(owner), &entries)
	if !found {
		entries = nil
	}
	return entries, found, err
}

// SetSchedule caches a schedule.
func (c *ReportCache) SetSchedule(ctx context.Context, owner string, entries []academic.ScheduleEntry) error {
	return c.set(ctx, c.scheduleKey(owner), entries)
}

// Invalidate drops every cached report and schedule.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.cache.DeleteByPattern(ctx, c.cache.Key("report", "*"))
	})
	c.stale.Store(err != nil)
	return err
}

package memory

import (
	"context"
	"sync"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
)

// ReportCache is an in-process report cache. Entries live until the next
// Invalidate.
type ReportCache struct {
	mu        sync.RWMutex
	report    *academic.GlobalReport
	schedules map[string][]academic.ScheduleEntry
}

// NewReportCache creates an empty cache.
func NewReportCache() *ReportCache {
	return &ReportCache{schedules: make(map[string][]academic.ScheduleEntry)}
}

// GetReport returns the cached global report, if present.
func (c *ReportCache) GetReport(_ context.Context) (academic.GlobalReport, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.report == nil {
		return academic.GlobalReport{}, false, nil
	}
	return *c.report, true, nil
}

// SetReport caches the global report.
func (c *ReportCache) SetReport(_ context.Context, report academic.GlobalReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = &report
	return nil
}

// GetSchedule returns a cached schedule.
func (c *ReportCache) GetSchedule(_ context.Context, owner string) ([]academic.ScheduleEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, ok := c.schedules[owner]
	return entries, ok, nil
}

// SetSchedule caches a schedule.
func (c *ReportCache) SetSchedule(_ context.Context, owner string, entries []academic.ScheduleEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedules[owner] = entries
	return nil
}

// Invalidate drops everything.
func (c *ReportCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = nil
	c.schedules = make(map[string][]academic.ScheduleEntry)
	return nil
}

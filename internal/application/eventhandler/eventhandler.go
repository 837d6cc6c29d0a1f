// Package eventhandler contains the subscribers that react to domain events:
// dropping cached reports after every change and writing an audit trail.
package eventhandler

import (
	"context"
	"time"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INVALIDATOR
// ══════════════════════════════════════════════════════════════════════════════

// Invalidator drops cached read models.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CacheInvalidator invalidates the report cache on every domain event.
type CacheInvalidator struct {
	cache   Invalidator
	timeout time.Duration
	log     *logger.Logger
}

// NewCacheInvalidator creates an invalidator. A non-positive timeout
// defaults to two seconds.
func NewCacheInvalidator(cache Invalidator, timeout time.Duration, log *logger.Logger) *CacheInvalidator {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CacheInvalidator{cache: cache, timeout: timeout, log: log.With(logger.Component("cache_invalidator"))}
}

// Register subscribes the invalidator to all events.
func (h *CacheInvalidator) Register(sub shared.EventSubscriber) error {
	return sub.SubscribeAll(h.Handle)
}

// Handle drops the cache.
func (h *CacheInvalidator) Handle(event shared.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.cache.Invalidate(ctx); err != nil {
		h.log.Error("cache invalidation failed",
			logger.String("event_type", string(event.EventType())),
			logger.Err(err),
		)
		return err
	}
	h.log.Debug("cache invalidated", logger.String("event_type", string(event.EventType())))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// AUDIT LOG
// ══════════════════════════════════════════════════════════════════════════════

// AuditLogger writes every domain event to the log.
type AuditLogger struct {
	log *logger.Logger
}

// NewAuditLogger creates an audit logger.
func NewAuditLogger(log *logger.Logger) *AuditLogger {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditLogger{log: log.With(logger.Component("audit"))}
}

// Register subscribes the audit logger to all events.
func (h *AuditLogger) Register(sub shared.EventSubscriber) error {
	return sub.SubscribeAll(h.Handle)
}

// Handle logs the event with its payload.
func (h *AuditLogger) Handle(event shared.Event) error {
	fields := []logger.Field{
		logger.String("event_type", string(event.EventType())),
		logger.String("aggregate_id", event.AggregateID()),
		logger.String("occurred_at", event.OccurredAt().UTC().Format(time.RFC3339)),
	}
	for k, v := range event.Payload() {
		fields = append(fields, logger.Any(k, v))
	}
	h.log.Info("domain event", fields...)
	return nil
}

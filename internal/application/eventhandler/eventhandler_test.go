package eventhandler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/internal/infrastructure/messaging"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

type failingInvalidator struct{}

func (failingInvalidator) Invalidate(context.Context) error { return errors.New("redis down") }

func TestCacheInvalidatorDropsReports(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewReportCache()
	require.NoError(t, cache.SetReport(ctx, academic.GlobalReport{}))

	bus := messaging.NewInMemoryEventBus(messaging.DefaultInMemoryEventBusConfig())
	require.NoError(t, NewCacheInvalidator(cache, 0, nil).Register(bus))
	require.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("MAT001", "EST001")))

	_, found, err := cache.GetReport(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheInvalidatorReportsFailure(t *testing.T) {
	h := NewCacheInvalidator(failingInvalidator{}, 0, nil)
	assert.Error(t, h.Handle(shared.NewRecordDeletedEvent(academic.KindCourse, "MAT001")))
}

func TestAuditLoggerWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelInfo, Format: logger.FormatJSON})

	h := NewAuditLogger(log)
	require.NoError(t, h.Handle(shared.NewGradeRecordedEvent("MAT001", "EST001", 4.5)))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"enrollment.grade_recorded"`)
	assert.Contains(t, out, `"component":"audit"`)
	assert.Contains(t, out, "EST001")
}

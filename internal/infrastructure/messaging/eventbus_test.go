package messaging

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/domain/shared"
)

func TestSyncBusDeliversToTypedAndGlobalHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())

	var order []string
	require.NoError(t, bus.Subscribe(shared.EventStudentEnrolled, func(e shared.Event) error {
		order = append(order, "typed:"+e.AggregateID())
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(e shared.Event) error {
		order = append(order, "all:"+string(e.EventType()))
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewStudentEnrolledEvent("MAT001", "EST001")))
	require.NoError(t, bus.Publish(shared.NewGradeRecordedEvent("MAT001", "EST001", 4)))

	assert.Equal(t, []string{
		"typed:MAT001",
		"all:enrollment.student_enrolled",
		"all:enrollment.grade_recorded",
	}, order)
}

func TestHandlerFailuresAreContained(t *testing.T) {
	bus := NewInMemoryEventBus(DefaultInMemoryEventBusConfig())
	var after int32

	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { return errors.New("boom") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error { panic("bad handler") }))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		atomic.AddInt32(&after, 1)
		return nil
	}))

	assert.NoError(t, bus.Publish(shared.NewRecordCreatedEvent("course", "MAT001")))
	assert.Equal(t, int32(1), atomic.LoadInt32(&after))

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(3), snap.HandlerExecutions)
	assert.Equal(t, int64(2), snap.HandlerFailures)
}

func TestAsyncBusDrainsOnClose(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{AsyncMode: true, WorkerPoolSize: 2})
	var n int32
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		atomic.AddInt32(&n, 1)
		return nil
	}))

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(shared.NewRecordDeletedEvent("student", "EST001")))
	}
	require.NoError(t, bus.Close())

	assert.LessOrEqual(t, atomic.LoadInt32(&n), int32(10))
	assert.ErrorIs(t, bus.Publish(shared.NewRecordDeletedEvent("student", "EST001")), ErrEventBusClosed)
	assert.ErrorIs(t, bus.SubscribeAll(func(shared.Event) error { return nil }), ErrEventBusClosed)
}

package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/memory"
)

type recorder struct {
	mu     sync.Mutex
	events []shared.Event
}

func (r *recorder) Publish(e shared.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []shared.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shared.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func setup(t *testing.T) (*workspace.Workspace, *recorder) {
	t.Helper()
	ws, err := workspace.Open(context.Background(), memory.NewRegistryRepository(), academic.DefaultSeed(), nil)
	require.NoError(t, err)
	return ws, &recorder{}
}

func TestCreateAndDeleteRecord(t *testing.T) {
	ctx := context.Background()
	ws, events := setup(t)

	res, err := NewCreateRecordHandler(ws, events, nil).Handle(ctx, CreateRecordCommand{
		Kind: academic.KindClassroom, Name: "Aula 301", Capacity: 40, CorrelationID: "req-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	_, err = NewCreateRecordHandler(ws, events, nil).Handle(ctx, CreateRecordCommand{
		Kind: academic.KindStudent, ID: "EST001", Name: "Otro",
	})
	assert.True(t, shared.IsAlreadyExists(err))

	require.NoError(t, NewDeleteRecordHandler(ws, events, nil).Handle(ctx, DeleteRecordCommand{
		Kind: academic.KindClassroom, ID: res.ID,
	}))
	assert.Len(t, ws.Snapshot().Classrooms, 3)

	assert.Equal(t, []shared.EventType{shared.EventRecordCreated, shared.EventRecordDeleted}, events.types())
	first := events.events[0].(shared.RecordEvent)
	assert.Equal(t, "req-1", first.CorrelationID)
}

func TestCreateRecordValidation(t *testing.T) {
	ws, events := setup(t)
	h := NewCreateRecordHandler(ws, events, nil)

	_, err := h.Handle(context.Background(), CreateRecordCommand{Kind: "janitor", Name: "x"})
	assert.True(t, shared.IsValidation(err))
	_, err = h.Handle(context.Background(), CreateRecordCommand{Kind: academic.KindCourse, Name: " "})
	assert.True(t, shared.IsValidation(err))
	_, err = h.Handle(context.Background(), CreateRecordCommand{Kind: academic.KindClassroom, Name: "Aula", Capacity: 0})
	assert.True(t, shared.IsValidation(err))
	assert.Empty(t, events.types())
}

func TestSchedulingFlow(t *testing.T) {
	ctx := context.Background()
	ws, events := setup(t)

	slot, err := NewSetTimeSlotHandler(ws, events, nil).Handle(ctx, SetTimeSlotCommand{
		CourseID: "MAT001", Day: "Lunes", Start: "08:00", End: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Monday 08:00-10:00", slot.String())

	assign := NewAssignClassroomHandler(ws, events, nil)
	res, err := assign.Handle(ctx, AssignClassroomCommand{CourseID: "MAT001", ClassroomID: "SAL002"})
	require.NoError(t, err)
	assert.Equal(t, 20, res.RemainingCapacity)
	assert.Empty(t, res.PreviousClassroomID)

	res, err = assign.Handle(ctx, AssignClassroomCommand{CourseID: "MAT001", ClassroomID: "SAL003"})
	require.NoError(t, err)
	assert.Equal(t, "SAL002", res.PreviousClassroomID)
	assert.Equal(t, 15, res.RemainingCapacity)

	_, err = assign.Handle(ctx, AssignClassroomCommand{CourseID: "FIS001", ClassroomID: "SAL003"})
	assert.ErrorIs(t, err, shared.ErrNoTimeSlot)

	prof := NewAssignProfessorHandler(ws, events, nil)
	require.NoError(t, prof.Handle(ctx, AssignProfessorCommand{CourseID: "MAT001", ProfessorID: "PRO001"}))
	err = prof.Handle(ctx, AssignProfessorCommand{CourseID: "MAT001", ProfessorID: "PRO002"})
	assert.ErrorIs(t, err, shared.ErrAlreadyAssigned)

	assert.Equal(t, []shared.EventType{
		shared.EventCourseScheduled,
		shared.EventClassroomAssigned,
		shared.EventClassroomAssigned,
		shared.EventProfessorAssigned,
	}, events.types())
}

func TestSetTimeSlotRejectsBadInput(t *testing.T) {
	ws, events := setup(t)
	h := NewSetTimeSlotHandler(ws, events, nil)

	_, err := h.Handle(context.Background(), SetTimeSlotCommand{CourseID: "MAT001", Day: "Mon", Start: "10:00", End: "09:00"})
	assert.True(t, shared.IsValidation(err))
	_, err = h.Handle(context.Background(), SetTimeSlotCommand{CourseID: "NOPE", Day: "Mon", Start: "09:00", End: "10:00"})
	assert.True(t, shared.IsNotFound(err))
	assert.Empty(t, events.types())
}

func TestEnrollmentAndGrades(t *testing.T) {
	ctx := context.Background()
	ws, events := setup(t)

	_, err := NewSetTimeSlotHandler(ws, events, nil).Handle(ctx, SetTimeSlotCommand{CourseID: "MAT001", Day: "Mon", Start: "08:00", End: "10:00"})
	require.NoError(t, err)
	_, err = NewAssignClassroomHandler(ws, events, nil).Handle(ctx, AssignClassroomCommand{CourseID: "MAT001", ClassroomID: "SAL003"})
	require.NoError(t, err)

	enroll := NewEnrollHandler(ws, events, nil)
	remaining, err := enroll.Handle(ctx, EnrollmentCommand{StudentID: "EST001", CourseID: "MAT001"})
	require.NoError(t, err)
	assert.Equal(t, 14, remaining)

	remaining, err = enroll.Handle(ctx, EnrollmentCommand{StudentID: "EST001", CourseID: "FIS001"})
	require.NoError(t, err)
	assert.Equal(t, academic.Unlimited, remaining)

	_, err = enroll.Handle(ctx, EnrollmentCommand{StudentID: "EST001", CourseID: "MAT001"})
	assert.True(t, shared.IsAlreadyExists(err))

	grade := NewRecordGradeHandler(ws, events, nil)
	require.NoError(t, grade.Handle(ctx, RecordGradeCommand{StudentID: "EST001", CourseID: "MAT001", Value: 4.5}))
	err = grade.Handle(ctx, RecordGradeCommand{StudentID: "EST001", CourseID: "MAT001", Value: 5.5})
	assert.ErrorIs(t, err, shared.ErrInvalidGrade)
	err = grade.Handle(ctx, RecordGradeCommand{StudentID: "EST002", CourseID: "MAT001", Value: 3})
	assert.ErrorIs(t, err, shared.ErrNotEnrolled)

	require.NoError(t, NewWithdrawHandler(ws, events, nil).Handle(ctx, EnrollmentCommand{StudentID: "EST001", CourseID: "MAT001"}))
	snap := ws.Snapshot()
	assert.Empty(t, snap.Grades)
	assert.Len(t, snap.Enrollments, 1)

	assert.Equal(t, []shared.EventType{
		shared.EventCourseScheduled,
		shared.EventClassroomAssigned,
		shared.EventStudentEnrolled,
		shared.EventStudentEnrolled,
		shared.EventGradeRecorded,
		shared.EventStudentWithdrawn,
	}, events.types())
}

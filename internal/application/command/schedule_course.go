package command

import (
	"context"
	"strings"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/schedule"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SET TIME SLOT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// SetTimeSlotCommand gives a course its weekly slot.
type SetTimeSlotCommand struct {
	CourseID string
	// Day accepts English or Spanish weekday names and 3-letter abbreviations.
	Day string
	// Start and End are "HH:MM".
	Start string
	End   string

	CorrelationID string
}

// Validate validates the command and returns the parsed slot.
func (c SetTimeSlotCommand) Validate() (schedule.TimeSlot, error) {
	if strings.TrimSpace(c.CourseID) == "" {
		return schedule.TimeSlot{}, invalid("SetTimeSlot", "course_id is required")
	}
	return schedule.ParseTimeSlot(c.Day, c.Start, c.End)
}

// SetTimeSlotHandler handles SetTimeSlotCommand.
type SetTimeSlotHandler struct {
	base
}

// NewSetTimeSlotHandler creates a new SetTimeSlotHandler.
func NewSetTimeSlotHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *SetTimeSlotHandler {
	return &SetTimeSlotHandler{base: newBase(ws, events, log, "set_time_slot")}
}

// Handle executes the command.
func (h *SetTimeSlotHandler) Handle(ctx context.Context, cmd SetTimeSlotCommand) (schedule.TimeSlot, error) {
	slot, err := cmd.Validate()
	if err != nil {
		return schedule.TimeSlot{}, err
	}

	err = h.ws.Update(ctx, func(reg *academic.Registry) error {
		return reg.SetTimeSlot(academic.CourseID(cmd.CourseID), slot)
	})
	if err != nil {
		h.rejected(err, logger.CourseID(cmd.CourseID))
		return schedule.TimeSlot{}, err
	}

	event := shared.NewCourseScheduledEvent(cmd.CourseID, slot.String())
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("course scheduled", logger.CourseID(cmd.CourseID), logger.String("slot", slot.String()))
	return slot, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGN CLASSROOM COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AssignClassroomCommand books a course's slot in a classroom.
type AssignClassroomCommand struct {
	CourseID      string
	ClassroomID   string
	CorrelationID string
}

// Validate validates the command.
func (c AssignClassroomCommand) Validate() error {
	if strings.TrimSpace(c.CourseID) == "" || strings.TrimSpace(c.ClassroomID) == "" {
		return invalid("AssignClassroom", "course_id and classroom_id are required")
	}
	return nil
}

// AssignClassroomResult reports the booking.
type AssignClassroomResult struct {
	CourseID            string
	ClassroomID         string
	PreviousClassroomID string
	// RemainingCapacity is the number of free seats after the assignment.
	RemainingCapacity int
}

// AssignClassroomHandler handles AssignClassroomCommand.
type AssignClassroomHandler struct {
	base
}

// NewAssignClassroomHandler creates a new AssignClassroomHandler.
func NewAssignClassroomHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *AssignClassroomHandler {
	return &AssignClassroomHandler{base: newBase(ws, events, log, "assign_classroom")}
}

// Handle executes the command.
func (h *AssignClassroomHandler) Handle(ctx context.Context, cmd AssignClassroomCommand) (*AssignClassroomResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := &AssignClassroomResult{CourseID: cmd.CourseID, ClassroomID: cmd.ClassroomID}
	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		courseID := academic.CourseID(cmd.CourseID)
		if c, err := reg.Course(courseID); err == nil {
			if prev, ok := c.Classroom(); ok && string(prev) != cmd.ClassroomID {
				result.PreviousClassroomID = string(prev)
			}
		}
		if err := reg.AssignClassroom(courseID, academic.ClassroomID(cmd.ClassroomID)); err != nil {
			return err
		}
		remaining, err := reg.RemainingCapacity(courseID)
		result.RemainingCapacity = remaining
		return err
	})
	if err != nil {
		h.rejected(err, logger.CourseID(cmd.CourseID), logger.ClassroomID(cmd.ClassroomID))
		return nil, err
	}

	event := shared.NewClassroomAssignedEvent(cmd.CourseID, cmd.ClassroomID, result.PreviousClassroomID, result.RemainingCapacity)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("classroom assigned",
		logger.CourseID(cmd.CourseID),
		logger.ClassroomID(cmd.ClassroomID),
		logger.Int("remaining_capacity", result.RemainingCapacity),
	)
	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGN PROFESSOR COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AssignProfessorCommand sets a course's professor.
type AssignProfessorCommand struct {
	CourseID      string
	ProfessorID   string
	CorrelationID string
}

// Validate validates the command.
func (c AssignProfessorCommand) Validate() error {
	if strings.TrimSpace(c.CourseID) == "" || strings.TrimSpace(c.ProfessorID) == "" {
		return invalid("AssignProfessor", "course_id and professor_id are required")
	}
	return nil
}

// AssignProfessorHandler handles AssignProfessorCommand.
type AssignProfessorHandler struct {
	base
}

// NewAssignProfessorHandler creates a new AssignProfessorHandler.
func NewAssignProfessorHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *AssignProfessorHandler {
	return &AssignProfessorHandler{base: newBase(ws, events, log, "assign_professor")}
}

// Handle executes the command.
func (h *AssignProfessorHandler) Handle(ctx context.Context, cmd AssignProfessorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		return reg.AssignProfessor(academic.CourseID(cmd.CourseID), academic.ProfessorID(cmd.ProfessorID))
	})
	if err != nil {
		h.rejected(err, logger.CourseID(cmd.CourseID), logger.ProfessorID(cmd.ProfessorID))
		return err
	}

	event := shared.NewProfessorAssignedEvent(cmd.CourseID, cmd.ProfessorID)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("professor assigned", logger.CourseID(cmd.CourseID), logger.ProfessorID(cmd.ProfessorID))
	return nil
}

package command

import (
	"context"
	"strings"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL / WITHDRAW
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentCommand names a student and a course.
type EnrollmentCommand struct {
	StudentID     string
	CourseID      string
	CorrelationID string
}

// Validate validates the command.
func (c EnrollmentCommand) Validate() error {
	if strings.TrimSpace(c.StudentID) == "" || strings.TrimSpace(c.CourseID) == "" {
		return invalid("Enrollment", "student_id and course_id are required")
	}
	return nil
}

// EnrollHandler enrolls students in courses.
type EnrollHandler struct {
	base
}

// NewEnrollHandler creates a new EnrollHandler.
func NewEnrollHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *EnrollHandler {
	return &EnrollHandler{base: newBase(ws, events, log, "enroll")}
}

// Handle enrolls the student. It returns the course's remaining capacity,
// academic.Unlimited when the course has no classroom.
func (h *EnrollHandler) Handle(ctx context.Context, cmd EnrollmentCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var remaining int
	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		courseID := academic.CourseID(cmd.CourseID)
		if err := reg.Enroll(academic.StudentID(cmd.StudentID), courseID); err != nil {
			return err
		}
		var err error
		remaining, err = reg.RemainingCapacity(courseID)
		return err
	})
	if err != nil {
		h.rejected(err, logger.StudentID(cmd.StudentID), logger.CourseID(cmd.CourseID))
		return 0, err
	}

	event := shared.NewStudentEnrolledEvent(cmd.CourseID, cmd.StudentID)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("student enrolled", logger.StudentID(cmd.StudentID), logger.CourseID(cmd.CourseID))
	return remaining, nil
}

// WithdrawHandler removes students from courses.
type WithdrawHandler struct {
	base
}

// NewWithdrawHandler creates a new WithdrawHandler.
func NewWithdrawHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *WithdrawHandler {
	return &WithdrawHandler{base: newBase(ws, events, log, "withdraw")}
}

// Handle withdraws the student, dropping their grade in the course.
func (h *WithdrawHandler) Handle(ctx context.Context, cmd EnrollmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		return reg.Withdraw(academic.StudentID(cmd.StudentID), academic.CourseID(cmd.CourseID))
	})
	if err != nil {
		h.rejected(err, logger.StudentID(cmd.StudentID), logger.CourseID(cmd.CourseID))
		return err
	}

	event := shared.NewStudentWithdrawnEvent(cmd.CourseID, cmd.StudentID)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("student withdrawn", logger.StudentID(cmd.StudentID), logger.CourseID(cmd.CourseID))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand stores a student's grade in a course.
type RecordGradeCommand struct {
	StudentID     string
	CourseID      string
	Value         float64
	CorrelationID string
}

// Validate validates the command. The grade range is checked by the domain.
func (c RecordGradeCommand) Validate() error {
	if strings.TrimSpace(c.StudentID) == "" || strings.TrimSpace(c.CourseID) == "" {
		return invalid("RecordGrade", "student_id and course_id are required")
	}
	return nil
}

// RecordGradeHandler handles RecordGradeCommand.
type RecordGradeHandler struct {
	base
}

// NewRecordGradeHandler creates a new RecordGradeHandler.
func NewRecordGradeHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *RecordGradeHandler {
	return &RecordGradeHandler{base: newBase(ws, events, log, "record_grade")}
}

// Handle executes the command.
func (h *RecordGradeHandler) Handle(ctx context.Context, cmd RecordGradeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		return reg.RecordGrade(academic.StudentID(cmd.StudentID), academic.CourseID(cmd.CourseID), cmd.Value)
	})
	if err != nil {
		h.rejected(err, logger.StudentID(cmd.StudentID), logger.CourseID(cmd.CourseID), logger.Float64("value", cmd.Value))
		return err
	}

	event := shared.NewGradeRecordedEvent(cmd.CourseID, cmd.StudentID, cmd.Value)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("grade recorded",
		logger.StudentID(cmd.StudentID),
		logger.CourseID(cmd.CourseID),
		logger.Float64("value", cmd.Value),
	)
	return nil
}

package command

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE RECORD COMMAND
// Registers a student, professor, course or classroom.
// ══════════════════════════════════════════════════════════════════════════════

// CreateRecordCommand contains the data for a new record. Fields that do not
// apply to the kind are ignored.
type CreateRecordCommand struct {
	// Kind is one of academic.KindStudent, KindProfessor, KindCourse, KindClassroom.
	Kind string

	// ID is optional; a random one is generated when empty.
	ID string

	Name     string
	Surname  string
	Credits  int
	Capacity int

	CorrelationID string
}

// Validate validates the command.
func (c CreateRecordCommand) Validate() error {
	switch c.Kind {
	case academic.KindStudent, academic.KindProfessor, academic.KindCourse, academic.KindClassroom:
	default:
		return invalid("CreateRecord", "unknown record kind %q", c.Kind)
	}
	if strings.TrimSpace(c.Name) == "" {
		return invalid("CreateRecord", "name is required")
	}
	if utf8.RuneCountInString(c.Name) > academic.MaxNameLength || utf8.RuneCountInString(c.Surname) > academic.MaxNameLength {
		return invalid("CreateRecord", "name and surname must be at most %d characters", academic.MaxNameLength)
	}
	return nil
}

// CreateRecordResult reports the stored record's identity.
type CreateRecordResult struct {
	Kind string
	ID   string
}

// CreateRecordHandler handles CreateRecordCommand.
type CreateRecordHandler struct {
	base
}

// NewCreateRecordHandler creates a new CreateRecordHandler.
func NewCreateRecordHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *CreateRecordHandler {
	return &CreateRecordHandler{base: newBase(ws, events, log, "create_record")}
}

// Handle executes the command.
func (h *CreateRecordHandler) Handle(ctx context.Context, cmd CreateRecordCommand) (*CreateRecordResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = uuid.NewString()
	}

	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		var err error
		switch cmd.Kind {
		case academic.KindStudent:
			_, err = reg.AddStudent(id, cmd.Name, cmd.Surname)
		case academic.KindProfessor:
			_, err = reg.AddProfessor(id, cmd.Name, cmd.Surname)
		case academic.KindCourse:
			_, err = reg.AddCourse(id, cmd.Name, cmd.Credits)
		case academic.KindClassroom:
			_, err = reg.AddClassroom(id, cmd.Name, cmd.Capacity)
		}
		return err
	})
	if err != nil {
		h.rejected(err, logger.Kind(cmd.Kind), logger.String("id", id))
		return nil, err
	}

	event := shared.NewRecordCreatedEvent(cmd.Kind, id)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("record created", logger.Kind(cmd.Kind), logger.String("id", id))
	return &CreateRecordResult{Kind: cmd.Kind, ID: id}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE RECORD COMMAND
// Removes a record and every reference to it.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteRecordCommand identifies the record to delete.
type DeleteRecordCommand struct {
	Kind          string
	ID            string
	CorrelationID string
}

// Validate validates the command.
func (c DeleteRecordCommand) Validate() error {
	switch c.Kind {
	case academic.KindStudent, academic.KindProfessor, academic.KindCourse, academic.KindClassroom:
	default:
		return invalid("DeleteRecord", "unknown record kind %q", c.Kind)
	}
	if strings.TrimSpace(c.ID) == "" {
		return invalid("DeleteRecord", "id is required")
	}
	return nil
}

// DeleteRecordHandler handles DeleteRecordCommand.
type DeleteRecordHandler struct {
	base
}

// NewDeleteRecordHandler creates a new DeleteRecordHandler.
func NewDeleteRecordHandler(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger) *DeleteRecordHandler {
	return &DeleteRecordHandler{base: newBase(ws, events, log, "delete_record")}
}

// Handle executes the command.
func (h *DeleteRecordHandler) Handle(ctx context.Context, cmd DeleteRecordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.ws.Update(ctx, func(reg *academic.Registry) error {
		switch cmd.Kind {
		case academic.KindStudent:
			return reg.RemoveStudent(academic.StudentID(cmd.ID))
		case academic.KindProfessor:
			return reg.RemoveProfessor(academic.ProfessorID(cmd.ID))
		case academic.KindCourse:
			return reg.RemoveCourse(academic.CourseID(cmd.ID))
		default:
			return reg.RemoveClassroom(academic.ClassroomID(cmd.ID))
		}
	})
	if err != nil {
		h.rejected(err, logger.Kind(cmd.Kind), logger.String("id", cmd.ID))
		return err
	}

	event := shared.NewRecordDeletedEvent(cmd.Kind, cmd.ID)
	event.BaseEvent = event.WithCorrelationID(cmd.CorrelationID)
	h.publish(event)

	h.log.Info("record deleted", logger.Kind(cmd.Kind), logger.String("id", cmd.ID))
	return nil
}

// Package command contains the write operations on the academic registry.
// Each handler validates its command, applies it through the workspace,
// publishes the resulting domain event and logs the outcome.
package command

import (
	"errors"

	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/shared"
	"github.com/alem-hub/academic-hub/pkg/logger"
)

// base carries what every handler needs.
type base struct {
	ws     *workspace.Workspace
	events shared.EventPublisher
	log    *logger.Logger
}

func newBase(ws *workspace.Workspace, events shared.EventPublisher, log *logger.Logger, op string) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{ws: ws, events: events, log: log.With(logger.Component("command"), logger.Operation(op))}
}

// publish sends the event if a publisher is configured. Delivery problems
// are logged only; the change itself is already committed.
func (b base) publish(event shared.Event) {
	if b.events == nil {
		return
	}
	if err := b.events.Publish(event); err != nil {
		b.log.Error("failed to publish event",
			logger.String("event_type", string(event.EventType())),
			logger.Err(err),
		)
	}
}

// rejected logs a failed command. Domain rule violations are expected and
// logged at warn; anything else is an error.
func (b base) rejected(err error, fields ...logger.Field) {
	fields = append(fields, logger.Err(err))
	var de *shared.DomainError
	if errors.As(err, &de) {
		b.log.Warn("command rejected", fields...)
		return
	}
	b.log.Error("command failed", fields...)
}

func invalid(op, format string, args ...any) error {
	return shared.Errorf("command", op, shared.ErrInvalidInput, format, args...)
}

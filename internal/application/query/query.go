// Package query contains the read operations on the academic registry.
// Queries never modify state. Reports and schedules go through a cache that
// event handlers drop whenever the registry changes.
package query

import (
	"context"

	"github.com/alem-hub/academic-hub/internal/domain/academic"
)

// ReportCache stores computed reports. A miss is reported with found=false
// and a nil error.
type ReportCache interface {
	GetReport(ctx context.Context) (report academic.GlobalReport, found bool, err error)
	SetReport(ctx context.Context, report academic.GlobalReport) error
	GetSchedule(ctx context.Context, owner string) (entries []academic.ScheduleEntry, found bool, err error)
	SetSchedule(ctx context.Context, owner string, entries []academic.ScheduleEntry) error
	Invalidate(ctx context.Context) error
}

// Owner keys used for cached schedules.
func studentOwner(id string) string   { return academic.KindStudent + ":" + id }
func professorOwner(id string) string { return academic.KindProfessor + ":" + id }

package report

import (
	"io"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// ScheduleReporter renders a computed schedule for a human or a program
type ScheduleReporter interface {
	Render(w io.Writer, report *entity.ScheduleReport) error
}

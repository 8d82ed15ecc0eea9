package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	reportport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/report"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/dto"
)

const clockLayout = "15:04"

var periodLabels = map[entity.PeriodName]string{
	entity.PeriodFirstSleep:  "First Sleep",
	entity.PeriodTahajjud:    "Tahajjud Prayer",
	entity.PeriodSecondSleep: "Second Sleep",
}

// TextReporter prints a schedule for people, in local clock times
type TextReporter struct{}

var _ reportport.ScheduleReporter = (*TextReporter)(nil)

// NewTextReporter creates a new text reporter
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

// Render implements report.ScheduleReporter
func (r *TextReporter) Render(w io.Writer, report *entity.ScheduleReport) error {
	if report == nil || report.Schedule == nil {
		return errors.New("report: nothing to render")
	}
	s := report.Schedule

	var b strings.Builder

	b.WriteString("\n")
	if name := report.Location.DisplayName(); name != "" {
		fmt.Fprintf(&b, "Location: %s", name)
	} else {
		b.WriteString("Location: unknown")
	}
	if report.Location.IsApproximate() {
		b.WriteString(" (approximate, location detection failed)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Coordinates: %s\n", report.Location.Coordinates)
	if report.Date != "" {
		fmt.Fprintf(&b, "Date: %s", report.Date)
		if report.Timezone != "" {
			fmt.Fprintf(&b, " (%s)", report.Timezone)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTahajjud Prayer Schedule:\n")
	b.WriteString("-------------------------\n")
	fmt.Fprintf(&b, "Total Night Duration: %s\n", dto.FormatDuration(s.Duration))
	for _, p := range s.Periods() {
		fmt.Fprintf(&b, "%s: %s - %s (%s)\n",
			periodLabels[p.Name],
			p.Start.Format(clockLayout),
			p.End.Format(clockLayout),
			dto.FormatDuration(p.Duration),
		)
	}
	fmt.Fprintf(&b, "Fajr Prayer: %s\n", s.FajrTime.Format(clockLayout))

	_, err := io.WriteString(w, b.String())
	return err
}

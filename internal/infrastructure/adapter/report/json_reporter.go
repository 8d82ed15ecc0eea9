package report

import (
	"errors"
	"io"

	"github.com/goccy/go-json"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
	reportport "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/port/report"
	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/infrastructure/adapter/api/dto"
)

// JSONReporter writes the same document the HTTP API returns
type JSONReporter struct {
	indent bool
}

var _ reportport.ScheduleReporter = (*JSONReporter)(nil)

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(indent bool) *JSONReporter {
	return &JSONReporter{indent: indent}
}

// Render implements report.ScheduleReporter
func (r *JSONReporter) Render(w io.Writer, report *entity.ScheduleReport) error {
	if report == nil || report.Schedule == nil {
		return errors.New("report: nothing to render")
	}

	enc := json.NewEncoder(w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(dto.NewScheduleReportResponse(report))
}

// New returns the reporter registered for format
func New(format string) (reportport.ScheduleReporter, error) {
	switch format {
	case "", "text":
		return NewTextReporter(), nil
	case "json":
		return NewJSONReporter(true), nil
	default:
		return nil, errors.New("report: unsupported format " + format)
	}
}

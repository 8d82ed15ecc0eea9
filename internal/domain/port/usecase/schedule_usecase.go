package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// ScheduleRequest is a request for the schedule of one night.
// Latitude and Longitude override location detection only when both are set.
type ScheduleRequest struct {
	Latitude  *float64
	Longitude *float64

	// ClientIP is the caller's address used for detection; empty means this machine
	ClientIP string

	// Date is the calendar day whose Isha opens the night; nil means today
	Date *time.Time
}

// ScheduleUseCase defines the schedule operations exposed to delivery adapters
type ScheduleUseCase interface {
	// GetSchedule resolves the location, fetches the night window and partitions it
	GetSchedule(ctx context.Context, req ScheduleRequest) (*entity.ScheduleReport, error)

	// ComputeSchedule partitions a caller-supplied night window
	ComputeSchedule(ctx context.Context, isha, fajr time.Time) (*entity.Schedule, error)
}

// LocationResolver always produces usable coordinates
type LocationResolver interface {
	// Resolve uses override when present, otherwise detection of clientIP, otherwise the configured default
	Resolve(ctx context.Context, override *entity.Coordinates, clientIP string) *entity.ResolvedLocation
}

// PrayerTimeSource supplies the Isha and Fajr anchors of one night
type PrayerTimeSource interface {
	// Fetch returns Isha of date and Fajr of the following day.
	// Failures are reported as SourceUnavailableError.
	Fetch(ctx context.Context, coords entity.Coordinates, date time.Time) (*entity.NightWindow, error)
}

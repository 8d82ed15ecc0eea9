package dto

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/entity"
)

// ScheduleQuery represents the query string of GET /api/v1/schedule
type ScheduleQuery struct {
	Latitude  *float64 `form:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `form:"longitude" binding:"omitempty,longitude"`
	Date      string   `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ComputeQuery represents the query string of GET /api/v1/schedule/compute
type ComputeQuery struct {
	Isha string `form:"isha" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Fajr string `form:"fajr" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// LocationResponse describes where the schedule applies
type LocationResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	ResolvedVia string  `json:"resolvedVia"`
	Approximate bool    `json:"approximate"`
}

// PeriodResponse is one segment of the night
type PeriodResponse struct {
	Name            string `json:"name"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Duration        string `json:"duration"`
	DurationSeconds int64  `json:"durationSeconds"`
}

// ScheduleResponse represents a computed night partition
type ScheduleResponse struct {
	Isha                 string           `json:"isha"`
	Fajr                 string           `json:"fajr"`
	NightDuration        string           `json:"nightDuration"`
	NightDurationSeconds int64            `json:"nightDurationSeconds"`
	FirstSleepStart      string           `json:"firstSleepStart"`
	TahajjudStart        string           `json:"tahajjudStart"`
	SecondSleepStart     string           `json:"secondSleepStart"`
	FajrTime             string           `json:"fajrTime"`
	Periods              []PeriodResponse `json:"periods"`
}

// ScheduleReportResponse represents the API response for a located schedule
type ScheduleReportResponse struct {
	Location LocationResponse `json:"location"`
	Date     string           `json:"date"`
	Timezone string           `json:"timezone"`
	Schedule ScheduleResponse `json:"schedule"`
}

// HealthResponse represents the API response of the health check
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// NewScheduleResponse maps a schedule to its API representation
func NewScheduleResponse(s *entity.Schedule) ScheduleResponse {
	periods := s.Periods()
	out := make([]PeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, PeriodResponse{
			Name:            string(p.Name),
			Start:           p.Start.Format(time.RFC3339),
			End:             p.End.Format(time.RFC3339),
			Duration:        FormatDuration(p.Duration),
			DurationSeconds: int64(p.Duration / time.Second),
		})
	}

	return ScheduleResponse{
		Isha:                 s.Window.Isha.Format(time.RFC3339),
		Fajr:                 s.Window.Fajr.Format(time.RFC3339),
		NightDuration:        FormatDuration(s.Duration),
		NightDurationSeconds: int64(s.Duration / time.Second),
		FirstSleepStart:      s.FirstSleepStart.Format(time.RFC3339),
		TahajjudStart:        s.TahajjudStart.Format(time.RFC3339),
		SecondSleepStart:     s.SecondSleepStart.Format(time.RFC3339),
		FajrTime:             s.FajrTime.Format(time.RFC3339),
		Periods:              out,
	}
}

// NewScheduleReportResponse maps a located schedule to its API representation
func NewScheduleReportResponse(r *entity.ScheduleReport) ScheduleReportResponse {
	return ScheduleReportResponse{
		Location: LocationResponse{
			Latitude:    r.Location.Latitude,
			Longitude:   r.Location.Longitude,
			City:        r.Location.City,
			Country:     r.Location.Country,
			ResolvedVia: string(r.Location.Via),
			Approximate: r.Location.IsApproximate(),
		},
		Date:     r.Date,
		Timezone: r.Timezone,
		Schedule: NewScheduleResponse(r.Schedule),
	}
}

// FormatDuration renders d as "Xh Ym", dropping seconds
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

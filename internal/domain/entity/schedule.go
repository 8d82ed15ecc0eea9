package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
)

const (
	// MaxNightDuration is the exclusive upper bound on a night accepted from a prayer time source
	MaxNightDuration = 24 * time.Hour

	// MinNightDuration keeps every partition segment strictly positive
	MinNightDuration = time.Minute

	// MaxRoundingDrift bounds |round(d/2) + round(d/6) + round(d/3) - d|.
	// Each division is rounded to the nearest second, so the drift is at most 1.5s.
	MaxRoundingDrift = 2 * time.Second

	partitionPrecision = time.Second
)

// PeriodName identifies a segment of the night
type PeriodName string

const (
	PeriodFirstSleep  PeriodName = "first_sleep"
	PeriodTahajjud    PeriodName = "tahajjud"
	PeriodSecondSleep PeriodName = "second_sleep"
)

// Period is one segment of the partitioned night
type Period struct {
	Name     PeriodName
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Schedule is the partitioned night between Isha and Fajr.
// It is a value object: once computed it never changes.
type Schedule struct {
	// Window echoes the anchors exactly as they were given
	Window   NightWindow
	Duration time.Duration

	FirstSleepStart  time.Time
	TahajjudStart    time.Time
	SecondSleepStart time.Time
	FajrTime         time.Time
}

// ComputeSchedule partitions the night between isha and fajr.
//
// Fajr is normalized onto the day after Isha first (see NormalizeNightWindow).
// The first half of the night is sleep, Tahajjud starts at the midpoint, the
// second sleep starts one sixth of the night later and lasts until Fajr.
// Each division is rounded to the nearest second; the last segment absorbs the
// remainder so the three segments always add up to the night exactly.
func ComputeSchedule(isha, fajr time.Time) (*Schedule, error) {
	if isha.Equal(fajr) {
		return nil, errs.NewInvalidWindowError(isha, fajr, 0, "isha and fajr coincide")
	}

	window := NormalizeNightWindow(isha, fajr)
	duration := window.Duration()

	switch {
	case duration <= 0:
		return nil, errs.NewInvalidWindowError(isha, fajr, duration, "night duration must be positive")
	case duration >= MaxNightDuration:
		return nil, errs.NewInvalidWindowError(isha, fajr, duration, "night duration must be shorter than 24h")
	case duration < MinNightDuration:
		return nil, errs.NewInvalidWindowError(isha, fajr, duration, "night too short to partition")
	}

	half := divide(duration, 2)
	sixth := divide(duration, 6)

	tahajjudStart := window.Isha.Add(half)

	return &Schedule{
		Window:           NightWindow{Isha: isha, Fajr: fajr},
		Duration:         duration,
		FirstSleepStart:  window.Isha,
		TahajjudStart:    tahajjudStart,
		SecondSleepStart: tahajjudStart.Add(sixth),
		FajrTime:         window.Fajr,
	}, nil
}

// divide splits d into n parts rounded to the nearest second
func divide(d time.Duration, n int64) time.Duration {
	return (d / time.Duration(n)).Round(partitionPrecision)
}

// FirstSleepDuration is the half of the night spent asleep after Isha
func (s *Schedule) FirstSleepDuration() time.Duration {
	return s.TahajjudStart.Sub(s.FirstSleepStart)
}

// TahajjudDuration is the time between Tahajjud and the second sleep
func (s *Schedule) TahajjudDuration() time.Duration {
	return s.SecondSleepStart.Sub(s.TahajjudStart)
}

// SecondSleepDuration is the time from the second sleep until Fajr
func (s *Schedule) SecondSleepDuration() time.Duration {
	return s.FajrTime.Sub(s.SecondSleepStart)
}

// RoundingDrift compares the three independently rounded fractions (1/2, 1/6
// and 1/3) with the night. The result is always within ±MaxRoundingDrift.
func (s *Schedule) RoundingDrift() time.Duration {
	return divide(s.Duration, 2) + divide(s.Duration, 6) + divide(s.Duration, 3) - s.Duration
}

// Periods returns the three segments in chronological order
func (s *Schedule) Periods() []Period {
	return []Period{
		{Name: PeriodFirstSleep, Start: s.FirstSleepStart, End: s.TahajjudStart, Duration: s.FirstSleepDuration()},
		{Name: PeriodTahajjud, Start: s.TahajjudStart, End: s.SecondSleepStart, Duration: s.TahajjudDuration()},
		{Name: PeriodSecondSleep, Start: s.SecondSleepStart, End: s.FajrTime, Duration: s.SecondSleepDuration()},
	}
}

// ScheduleReport is a computed schedule together with where and when it applies
type ScheduleReport struct {
	Location ResolvedLocation
	Date     string
	Timezone string
	Schedule *Schedule
}

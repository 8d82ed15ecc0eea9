package entity

import (
	"time"
)

// DateLayout is the calendar date format used across the API and CLI
const DateLayout = "2006-01-02"

// DailyTimings holds the prayer times of one calendar day at one place.
// Times are absolute instants carried in the place's location.
type DailyTimings struct {
	Date     string    `json:"date"`
	Timezone string    `json:"timezone"`
	Fajr     time.Time `json:"fajr"`
	Sunrise  time.Time `json:"sunrise"`
	Maghrib  time.Time `json:"maghrib"`
	Isha     time.Time `json:"isha"`
}

// InLocation re-attaches the named timezone, which JSON round trips lose
func (d *DailyTimings) InLocation() error {
	if d.Timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return err
	}
	d.Fajr = d.Fajr.In(loc)
	d.Sunrise = d.Sunrise.In(loc)
	d.Maghrib = d.Maghrib.In(loc)
	d.Isha = d.Isha.In(loc)
	return nil
}

// NightWindow is the pair of anchors delimiting one night.
// Fajr is expected on the calendar day after Isha; NormalizeNightWindow enforces it.
type NightWindow struct {
	Isha time.Time
	Fajr time.Time
}

// latestIshaRollover is the wall clock below which an evening's Isha is taken
// to fall after midnight, as it does at high latitudes in summer
const latestIshaRollover = clock(12 * time.Hour)

// NewNightWindow builds a window from the evening timings of one day and the
// dawn timings of the following day. An Isha reported before noon belongs to
// the early hours of the next calendar day and is moved there.
func NewNightWindow(evening, dawn *DailyTimings) NightWindow {
	isha := evening.Isha
	if clockOf(isha) < latestIshaRollover {
		isha = isha.AddDate(0, 0, 1)
	}

	return NightWindow{
		Isha: isha,
		Fajr: dawn.Fajr,
	}
}

// NormalizeNightWindow moves Fajr onto the day after Isha when the source gave
// both on the same calendar date. A Fajr already dated after Isha is kept as is.
func NormalizeNightWindow(isha, fajr time.Time) NightWindow {
	fajr = fajr.In(isha.Location())

	if dateOf(fajr).After(dateOf(isha)) {
		return NightWindow{Isha: isha, Fajr: fajr}
	}

	if !clockOf(fajr).After(clockOf(isha)) {
		fajr = fajr.AddDate(0, 0, 1)
	}

	return NightWindow{Isha: isha, Fajr: fajr}
}

// Duration returns the elapsed time between Isha and Fajr
func (w NightWindow) Duration() time.Duration {
	return w.Fajr.Sub(w.Isha)
}

// dateOf truncates t to midnight of its calendar day, in UTC so that
// comparisons are free of DST gaps
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// clockOf returns the wall clock of t as an offset from midnight
func clockOf(t time.Time) clock {
	h, m, s := t.Clock()
	return clock(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

type clock time.Duration

func (c clock) After(other clock) bool {
	return c > other
}

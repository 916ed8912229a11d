package shift

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used throughout the schedule.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyTimeLabel = errors.New("shift time label cannot be empty")
	ErrInvalidHours   = errors.New("shift hours must satisfy 0 <= start < end <= 24")
	ErrInvalidDate    = errors.New("day date must be in YYYY-MM-DD format")
)

// Shift is one staffed slot on an event day. Hours are whole local-time hours;
// a shift covers startHour <= hour < endHour.
type Shift struct {
	Time      string // display label, e.g. "10:00〜12:00"
	StartHour int
	EndHour   int
	Members   []string
}

// Validate checks if the Shift has valid data.
// PRE: Shift struct is populated
// POST: Returns nil if valid, error otherwise
func (s Shift) Validate() error {
	if s.Time == "" {
		return ErrEmptyTimeLabel
	}
	if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
		return ErrInvalidHours
	}
	return nil
}

// ActiveAt reports whether the given local hour falls inside the shift window.
func (s Shift) ActiveAt(hour int) bool {
	return hour >= s.StartHour && hour < s.EndHour
}

// HasMember reports whether the named member is rostered on this shift.
func (s Shift) HasMember(name string) bool {
	for _, m := range s.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Day is one event day's shift plan. Read-only configuration; the board never
// mutates it.
type Day struct {
	Date   string // YYYY-MM-DD
	Shifts []Shift
}

// Validate checks if the Day has valid data.
// PRE: Day struct is populated
// POST: Returns nil if valid, error otherwise
func (d Day) Validate() error {
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, d.Date)
	}
	for i, s := range d.Shifts {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
	}
	return nil
}

// TodaysSchedule finds the Day whose date matches now's local calendar date.
// The returned index is the day's position in the schedule (for "day 1",
// "day 2" labels). ok is false when today is not an event day.
func TodaysSchedule(days []Day, now time.Time) (day Day, index int, ok bool) {
	today := now.Format(DateLayout)
	for i, d := range days {
		if d.Date == today {
			return d, i, true
		}
	}
	return Day{}, 0, false
}

// ActiveShift returns the shift covering now's local hour. Schedule data is
// assumed non-overlapping; on overlap the first match wins.
func ActiveShift(day Day, now time.Time) (Shift, bool) {
	hour := now.Hour()
	for _, s := range day.Shifts {
		if s.ActiveAt(hour) {
			return s, true
		}
	}
	return Shift{}, false
}

// UpcomingShiftsFor returns today's shifts that have not yet ended and list
// the member, in schedule order. Used to warn a member clocking out that they
// still have shifts remaining.
func UpcomingShiftsFor(day Day, member string, now time.Time) []Shift {
	hour := now.Hour()
	var remaining []Shift
	for _, s := range day.Shifts {
		if s.EndHour > hour && s.HasMember(member) {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

package shift_test

import (
	"testing"
	"time"

	"shiftboard/internal/domain/shift"
)

var festivalDays = []shift.Day{
	{
		Date: "2026-09-19",
		Shifts: []shift.Shift{
			{Time: "10:00〜12:00", StartHour: 10, EndHour: 12, Members: []string{"佐藤", "鈴木"}},
			{Time: "12:00〜14:00", StartHour: 12, EndHour: 14, Members: []string{"高橋"}},
			{Time: "14:00〜16:00", StartHour: 14, EndHour: 16, Members: []string{"佐藤"}},
		},
	},
	{
		Date: "2026-09-20",
		Shifts: []shift.Shift{
			{Time: "10:00〜13:00", StartHour: 10, EndHour: 13, Members: []string{"鈴木"}},
		},
	},
}

func at(date string, hour int) time.Time {
	d, err := time.ParseInLocation(shift.DateLayout, date, time.Local)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

// TestShift_Validate tests shift window validation.
func TestShift_Validate(t *testing.T) {
	tests := []struct {
		name    string
		shift   shift.Shift
		wantErr bool
	}{
		{name: "valid", shift: shift.Shift{Time: "10:00〜12:00", StartHour: 10, EndHour: 12}, wantErr: false},
		{name: "full day", shift: shift.Shift{Time: "終日", StartHour: 0, EndHour: 24}, wantErr: false},
		{name: "empty label", shift: shift.Shift{StartHour: 10, EndHour: 12}, wantErr: true},
		{name: "start after end", shift: shift.Shift{Time: "x", StartHour: 12, EndHour: 10}, wantErr: true},
		{name: "zero width", shift: shift.Shift{Time: "x", StartHour: 10, EndHour: 10}, wantErr: true},
		{name: "negative start", shift: shift.Shift{Time: "x", StartHour: -1, EndHour: 10}, wantErr: true},
		{name: "end past midnight", shift: shift.Shift{Time: "x", StartHour: 10, EndHour: 25}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shift.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Shift.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestTodaysSchedule matches on the local calendar date and reports the day
// index for labeling.
func TestTodaysSchedule(t *testing.T) {
	day, index, ok := shift.TodaysSchedule(festivalDays, at("2026-09-20", 9))
	if !ok {
		t.Fatal("expected a schedule for day two")
	}
	if day.Date != "2026-09-20" || index != 1 {
		t.Errorf("got date %s index %d, want 2026-09-20 index 1", day.Date, index)
	}

	// Time of day must not matter, only the calendar date.
	_, _, ok = shift.TodaysSchedule(festivalDays, at("2026-09-19", 23))
	if !ok {
		t.Error("late evening on an event day should still match")
	}

	_, _, ok = shift.TodaysSchedule(festivalDays, at("2026-09-21", 10))
	if ok {
		t.Error("non-event day should not match")
	}
}

// TestActiveShift verifies the startHour <= hour < endHour window.
func TestActiveShift(t *testing.T) {
	day := festivalDays[0]

	got, ok := shift.ActiveShift(day, at("2026-09-19", 11))
	if !ok || got.Time != "10:00〜12:00" {
		t.Errorf("at hour 11: got %v ok=%v, want the 10-12 shift", got.Time, ok)
	}

	// endHour is exclusive; hour 12 belongs to the next shift.
	got, ok = shift.ActiveShift(day, at("2026-09-19", 12))
	if !ok || got.Time != "12:00〜14:00" {
		t.Errorf("at hour 12: got %v ok=%v, want the 12-14 shift", got.Time, ok)
	}

	if _, ok := shift.ActiveShift(day, at("2026-09-19", 16)); ok {
		t.Error("hour 16 is outside every shift window")
	}
}

// TestUpcomingShiftsFor verifies the remaining-shift warning used at clock-out.
func TestUpcomingShiftsFor(t *testing.T) {
	day := festivalDays[0]

	got := shift.UpcomingShiftsFor(day, "佐藤", at("2026-09-19", 9))
	if len(got) != 2 || got[0].Time != "10:00〜12:00" || got[1].Time != "14:00〜16:00" {
		t.Errorf("at hour 9: got %d shifts %v, want both 佐藤 shifts in schedule order", len(got), got)
	}

	// A shift in progress has not ended, so it is still listed.
	got = shift.UpcomingShiftsFor(day, "佐藤", at("2026-09-19", 11))
	if len(got) != 2 {
		t.Errorf("at hour 11: got %d shifts, want 2", len(got))
	}

	got = shift.UpcomingShiftsFor(day, "佐藤", at("2026-09-19", 13))
	if len(got) != 1 || got[0].Time != "14:00〜16:00" {
		t.Errorf("at hour 13: got %v, want only the 14-16 shift", got)
	}

	if got := shift.UpcomingShiftsFor(day, "佐藤", at("2026-09-19", 16)); len(got) != 0 {
		t.Errorf("at hour 16: got %v, want none", got)
	}

	if got := shift.UpcomingShiftsFor(day, "部外者", at("2026-09-19", 9)); len(got) != 0 {
		t.Errorf("unlisted member: got %v, want none", got)
	}
}

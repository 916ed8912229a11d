// Package projections derives read models from board state for the admin
// views. Projections are pure: same state and reference time, same output.
package projections

import (
	"sort"
	"time"

	"shiftboard/internal/domain/attendance"
)

// WorkReportRow is one member's line in the admin report.
type WorkReportRow struct {
	Name      string
	Status    attendance.Status
	Total     time.Duration
	Formatted string // Total as HH:MM:SS
}

// BuildWorkReport computes total worked time per roster member at the given
// reference time, sorted by total descending. Members sharing a total keep
// roster order. Non-roster entries in the state are ignored.
// PRE: ref is the reference time for open sessions
// POST: Returns one row per roster member
func BuildWorkReport(state attendance.DayState, names []string, ref time.Time) []WorkReportRow {
	rows := make([]WorkReportRow, 0, len(names))
	for _, name := range names {
		entry, ok := state[name]
		status := attendance.StatusAbsent
		var total time.Duration
		if ok {
			status = entry.Status
			total = attendance.Elapsed(entry.Sessions, ref)
		}
		rows = append(rows, WorkReportRow{
			Name:      name,
			Status:    status,
			Total:     total,
			Formatted: attendance.FormatDuration(total),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	return rows
}

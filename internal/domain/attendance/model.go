package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Status is a member's presence state on the board.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Domain errors. Both transition errors signal a no-op: the member's state is
// left exactly as it was.
var (
	ErrAlreadyPresent = errors.New("member is already clocked in")
	ErrNotPresent     = errors.New("member is not clocked in")
)

// WorkSession is one clock-in/clock-out pair. A zero ClockOut means the
// session is still open.
type WorkSession struct {
	ClockIn  time.Time
	ClockOut time.Time
}

// IsOpen returns true if the member has not clocked out of this session.
func (s WorkSession) IsOpen() bool {
	return s.ClockOut.IsZero()
}

// Validate checks if the WorkSession has valid data.
// PRE: WorkSession struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ClockIn must be set, ClockOut (when set) must not precede ClockIn
func (s WorkSession) Validate() error {
	if s.ClockIn.IsZero() {
		return errors.New("clock-in time must be set")
	}
	if !s.ClockOut.IsZero() && s.ClockOut.Before(s.ClockIn) {
		return errors.New("clock-out time cannot be before clock-in time")
	}
	return nil
}

// Duration returns the session length, using ref as the end of a still-open
// session.
func (s WorkSession) Duration(ref time.Time) time.Duration {
	end := s.ClockOut
	if s.IsOpen() {
		end = ref
	}
	return end.Sub(s.ClockIn)
}

// MemberStatus holds one member's presence state and session ledger for the
// day. Sessions are append/patch-last only; earlier entries are never edited.
type MemberStatus struct {
	Status   Status
	Sessions []WorkSession
}

// HasOpenSession returns true if the last session in the ledger is open.
func (m MemberStatus) HasOpenSession() bool {
	n := len(m.Sessions)
	return n > 0 && m.Sessions[n-1].IsOpen()
}

// Validate checks the status/ledger invariant.
// PRE: MemberStatus is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Status == present iff the last session is open; only the last
// session may be open
func (m MemberStatus) Validate() error {
	for i, s := range m.Sessions {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}
		if s.IsOpen() && i != len(m.Sessions)-1 {
			return fmt.Errorf("session %d is open but not last", i)
		}
	}
	if (m.Status == StatusPresent) != m.HasOpenSession() {
		return fmt.Errorf("status %q does not match ledger", m.Status)
	}
	return nil
}

// ClockIn appends a new open session and marks the member present.
// PRE: Status is absent
// POST: New open session appended, Status == present
// INVARIANT: Returns ErrAlreadyPresent without mutating state if already present
func (m *MemberStatus) ClockIn(now time.Time) error {
	if m.Status == StatusPresent {
		return ErrAlreadyPresent
	}
	m.Sessions = append(m.Sessions, WorkSession{ClockIn: now})
	m.Status = StatusPresent
	return nil
}

// ClockOut closes the open session and marks the member absent. If the status
// says present but no open session exists, the status is corrected to absent
// without touching the ledger.
// PRE: Status is present
// POST: Last session closed (if open), Status == absent
// INVARIANT: Returns ErrNotPresent without mutating state if already absent
func (m *MemberStatus) ClockOut(now time.Time) error {
	if m.Status == StatusAbsent {
		return ErrNotPresent
	}
	if n := len(m.Sessions); n > 0 && m.Sessions[n-1].IsOpen() {
		m.Sessions[n-1].ClockOut = now
	}
	m.Status = StatusAbsent
	return nil
}

// Clone returns a deep copy. The sessions slice is copied so callers can hold
// a snapshot without aliasing the live ledger.
func (m MemberStatus) Clone() MemberStatus {
	out := MemberStatus{Status: m.Status}
	if m.Sessions != nil {
		out.Sessions = make([]WorkSession, len(m.Sessions))
		copy(out.Sessions, m.Sessions)
	}
	return out
}

// Elapsed sums the duration of all sessions, using ref as the end of any
// still-open session. Same inputs always yield the same total; advancing ref
// on an open ledger never decreases it.
func Elapsed(sessions []WorkSession, ref time.Time) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration(ref)
	}
	return total
}

// FormatDuration renders a duration as zero-padded HH:MM:SS, truncating to
// whole seconds. The hours component is unbounded. Negative input clamps to
// "00:00:00".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// DayState maps member name to that member's status for a single calendar day.
type DayState map[string]MemberStatus

// NewDayState returns a fresh state with every roster member absent.
func NewDayState(names []string) DayState {
	state := make(DayState, len(names))
	for _, name := range names {
		state[name] = MemberStatus{Status: StatusAbsent, Sessions: []WorkSession{}}
	}
	return state
}

// Reconcile aligns loaded state with the roster: any roster member that is
// missing, or whose entry lacks a sessions list, is reset to absent with an
// empty ledger. Entries for names no longer on the roster are kept as-is;
// they are harmless leftovers that the board never surfaces. Idempotent.
func (s DayState) Reconcile(names []string) {
	for _, name := range names {
		entry, ok := s[name]
		if !ok || entry.Sessions == nil {
			s[name] = MemberStatus{Status: StatusAbsent, Sessions: []WorkSession{}}
		}
	}
}

// PresentCount returns the number of members currently clocked in.
func (s DayState) PresentCount() int {
	count := 0
	for _, entry := range s {
		if entry.Status == StatusPresent {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the whole day's state.
func (s DayState) Clone() DayState {
	out := make(DayState, len(s))
	for name, entry := range s {
		out[name] = entry.Clone()
	}
	return out
}

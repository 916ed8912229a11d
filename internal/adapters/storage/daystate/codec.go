package daystate

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shiftboard/internal/domain/attendance"
)

// ErrMalformedState marks persisted data that cannot be trusted. Callers fall
// back to a fresh all-absent state; the stored row is left as-is.
var ErrMalformedState = errors.New("malformed day state")

// keyPrefix is the historical storage key prefix. Month and day are unpadded,
// so the key for a given calendar day is stable across the whole day and
// distinct from every other day's.
const keyPrefix = "shogi-attendance"

// DayKey derives the storage key for t's local calendar date.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%s-%d-%d-%d", keyPrefix, t.Year(), int(t.Month()), t.Day())
}

// Wire layout: member name -> {status, sessions:[{clockIn, clockOut?}]} with
// epoch-millisecond timestamps and clockOut omitted while a session is open.
type wireSession struct {
	ClockIn  int64  `json:"clockIn"`
	ClockOut *int64 `json:"clockOut,omitempty"`
}

type wireMember struct {
	Status   string        `json:"status"`
	Sessions []wireSession `json:"sessions"`
}

// Encode serializes the day state to the wire layout.
// PRE: state entries satisfy the status/ledger invariant
// POST: Returns a JSON payload that Decode round-trips
func Encode(state attendance.DayState) ([]byte, error) {
	wire := make(map[string]wireMember, len(state))
	for name, entry := range state {
		sessions := make([]wireSession, len(entry.Sessions))
		for i, s := range entry.Sessions {
			sessions[i] = wireSession{ClockIn: s.ClockIn.UnixMilli()}
			if !s.IsOpen() {
				out := s.ClockOut.UnixMilli()
				sessions[i].ClockOut = &out
			}
		}
		wire[name] = wireMember{Status: string(entry.Status), Sessions: sessions}
	}
	return json.Marshal(wire)
}

// Decode parses a stored payload. Entries whose sessions field is missing come
// back with a nil ledger; Reconcile resets those for roster members. Anything
// that is not a JSON object of member entries is ErrMalformedState.
// PRE: payload was read from the store
// POST: Returns the parsed state, or an error wrapping ErrMalformedState
func Decode(payload []byte) (attendance.DayState, error) {
	var wire map[string]wireMember
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if wire == nil {
		return nil, fmt.Errorf("%w: null payload", ErrMalformedState)
	}

	state := make(attendance.DayState, len(wire))
	for name, entry := range wire {
		var sessions []attendance.WorkSession
		if entry.Sessions != nil {
			sessions = make([]attendance.WorkSession, len(entry.Sessions))
			for i, s := range entry.Sessions {
				sessions[i] = attendance.WorkSession{ClockIn: time.UnixMilli(s.ClockIn)}
				if s.ClockOut != nil {
					sessions[i].ClockOut = time.UnixMilli(*s.ClockOut)
				}
			}
		}
		state[name] = attendance.MemberStatus{
			Status:   attendance.Status(entry.Status),
			Sessions: sessions,
		}
	}
	return state, nil
}

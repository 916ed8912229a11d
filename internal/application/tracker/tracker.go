// Package tracker owns the live board state for the current calendar day. It
// is the only writer: every mutation flows through ClockIn/ClockOut, and each
// one is written through to the day-state store. Persistence failures are
// logged and never surface to callers; the in-memory state stays
// authoritative and the next successful write catches up.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shiftboard/internal/adapters/storage/daystate"
	"shiftboard/internal/domain/attendance"
)

// ErrUnknownMember is returned for names not on the roster.
var ErrUnknownMember = errors.New("member is not on the roster")

// Clock supplies the current time; swapped out in tests.
type Clock func() time.Time

// Tracker holds one day's attendance state behind a mutex. HTTP handlers are
// concurrent, so unlike the single-threaded original every entry point locks.
type Tracker struct {
	mu     sync.Mutex
	store  daystate.Store
	names  []string
	now    Clock
	dayKey string
	state  attendance.DayState
}

// New creates a Tracker for the given roster. A nil clock means time.Now.
// Call Init before serving requests.
func New(store daystate.Store, names []string, clock Clock) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	return &Tracker{store: store, names: names, now: clock}
}

// Init loads today's state from the store, or starts fresh when nothing
// usable is stored.
// PRE: store is ready
// POST: state holds one entry per roster member
func (t *Tracker) Init(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dayKey = daystate.DayKey(t.now())
	t.state = t.loadDay(ctx, t.dayKey)
}

// loadDay reads and reconciles the state for a day key. Missing or malformed
// data falls back to a fresh all-absent state; the failure is logged, never
// propagated, and the stored row is not deleted.
func (t *Tracker) loadDay(ctx context.Context, key string) attendance.DayState {
	payload, err := t.store.Get(ctx, key)
	if errors.Is(err, daystate.ErrNotFound) {
		slog.Info("board_event", "event", "day_started_fresh", "day_key", key)
		return attendance.NewDayState(t.names)
	}
	if err != nil {
		slog.Error("board_event", "event", "day_state_load_failed", "day_key", key, "error", err.Error())
		return attendance.NewDayState(t.names)
	}

	state, err := daystate.Decode(payload)
	if err != nil {
		slog.Warn("board_event", "event", "day_state_parse_failed", "day_key", key, "error", err.Error())
		return attendance.NewDayState(t.names)
	}
	state.Reconcile(t.names)
	slog.Info("board_event", "event", "day_state_restored", "day_key", key, "present", state.PresentCount())
	return state
}

// ensureDay re-addresses the current day key. Crossing midnight in a
// long-running process switches to the new day's record; the prior day's row
// is left behind, not deleted.
// PRE: t.mu is held
func (t *Tracker) ensureDay(ctx context.Context) {
	key := daystate.DayKey(t.now())
	if key == t.dayKey {
		return
	}
	slog.Info("board_event", "event", "day_rollover", "from", t.dayKey, "to", key)
	t.dayKey = key
	t.state = t.loadDay(ctx, key)
}

// save writes the full state through to the store. Write failures are logged
// and swallowed; the board keeps serving from memory.
// PRE: t.mu is held
func (t *Tracker) save(ctx context.Context) {
	payload, err := daystate.Encode(t.state)
	if err != nil {
		slog.Error("board_event", "event", "day_state_encode_failed", "day_key", t.dayKey, "error", err.Error())
		return
	}
	if err := t.store.Put(ctx, t.dayKey, payload); err != nil {
		slog.Error("board_event", "event", "day_state_save_failed", "day_key", t.dayKey, "error", err.Error())
	}
}

// ClockIn transitions a member from absent to present.
// PRE: name is on the roster
// POST: Member has a new open session and is present; state is persisted
// INVARIANT: ErrAlreadyPresent leaves state untouched and skips the write
func (t *Tracker) ClockIn(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureDay(ctx)

	entry, ok := t.state[name]
	if !ok {
		return ErrUnknownMember
	}
	now := t.now()
	if err := entry.ClockIn(now); err != nil {
		return err
	}
	t.state[name] = entry
	t.save(ctx)
	slog.Info("attendance_event", "event", "clocked_in", "member", name, "at", now.UnixMilli())
	return nil
}

// ClockOut transitions a member from present to absent, closing the open
// session.
// PRE: name is on the roster
// POST: Member's last session is closed and status is absent; state is persisted
// INVARIANT: ErrNotPresent leaves state untouched and skips the write
func (t *Tracker) ClockOut(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureDay(ctx)

	entry, ok := t.state[name]
	if !ok {
		return ErrUnknownMember
	}
	now := t.now()
	if err := entry.ClockOut(now); err != nil {
		return err
	}
	t.state[name] = entry
	t.save(ctx)
	slog.Info("attendance_event", "event", "clocked_out", "member", name, "at", now.UnixMilli(),
		"total", attendance.FormatDuration(attendance.Elapsed(entry.Sessions, now)))
	return nil
}

// Snapshot returns a deep copy of the current state plus the reference time it
// was taken at. Callers may compute durations or mutate the copy freely
// without touching the live ledger.
func (t *Tracker) Snapshot(ctx context.Context) (attendance.DayState, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureDay(ctx)
	return t.state.Clone(), t.now()
}

// Flush persists the current state. Used by the background worker and at
// shutdown; it also picks up the day rollover when no one has pressed a
// button since midnight.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureDay(ctx)
	t.save(ctx)
}

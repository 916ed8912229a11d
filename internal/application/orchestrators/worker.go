package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"shiftboard/internal/application/tracker"
)

// StartBackgroundWorker starts a goroutine that periodically flushes the
// tracker. The flush doubles as the day-rollover check: if nobody presses a
// button across midnight, the next tick re-addresses the new day's record.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed; the ticker is released on stop
func StartBackgroundWorker(t *tracker.Tracker, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				t.Flush(ctx)
				cancel()
			case <-stopCh:
				slog.Info("board_event", "event", "flush_worker_stopped")
				return
			}
		}
	}()
}

package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/feed/internal/state"
	"github.com/five82/feed/internal/tailer"
)

const maxBackoff = 30 * time.Second

// StartPoller launches a background goroutine that steps the tailer and
// records each cycle in the store. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, t *tailer.Tailer, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = tailer.DefaultRefresh
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(store, t); err != nil {
				failures++
				logger.Warn().Err(err).Int("failures", failures).Msg("log poll failed")
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

func refresh(store *state.Store, t *tailer.Tailer) error {
	cycle, err := t.Step()
	if err != nil {
		store.Update(tailer.Cycle{}, 0, 0, err)
		return err
	}
	store.Update(cycle, t.History().Len(), t.History().Revision(), nil)
	return nil
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

package player

import (
	"context"
	"time"

	"github.com/five82/flicker/internal/config"
	"github.com/five82/flicker/internal/framestore"
)

// waitForStartup minimizes time-to-first-frame (§5 Startup latency): it
// returns after ~500ms or the first rendered frame, whichever comes
// first. This is purely an optimization — if nothing is ready yet the
// playback engine will simply show BUFFERING. reporter.LoadProgress is
// fed from the same poll so the initial-load progress bar moves during
// the wait, and LoadComplete fires exactly once on the way out.
func waitForStartup(ctx context.Context, store *framestore.Store, reporter Reporter) {
	deadline := time.After(config.StartupLatencyBudgetMs * time.Millisecond)
	poll := time.NewTicker(5 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			reporter.LoadComplete()
			return
		case <-deadline:
			reporter.LoadComplete()
			return
		case <-poll.C:
			reportLoadProgress(reporter, store)
			if store.ReadyUpTo(1) {
				reporter.LoadComplete()
				return
			}
		}
	}
}

// waitForPreload implements the preload specialization (§9 Open
// questions): the engine does not start its first tick until extraction
// has finished and the contiguous rendered prefix reaches totalFrames.
// When totalFrames is unknown it returns as soon as extraction has
// finished, without waiting for rendering to catch up. Progress is
// reported the whole way, since this wait can run for the length of
// the entire video rather than a capped startup window.
func waitForPreload(ctx context.Context, store *framestore.Store, reporter Reporter) {
	poll := time.NewTicker(10 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			reporter.LoadComplete()
			return
		case <-poll.C:
			reportLoadProgress(reporter, store)
			if !store.ExtractionComplete() {
				continue
			}
			total := store.TotalFrames()
			if total > 0 {
				if store.LastRenderedFrame() >= total {
					reporter.LoadComplete()
					return
				}
			} else {
				reporter.LoadComplete()
				return // nothing more will arrive and duration was unknown
			}
		}
	}
}

// reportLoadProgress reports percent-complete through totalFrames; it
// is a no-op until totalFrames is known (duration probe failed).
func reportLoadProgress(reporter Reporter, store *framestore.Store) {
	total := store.TotalFrames()
	if total <= 0 {
		return
	}
	percent := float64(store.LastRenderedFrame()) / float64(total) * 100
	if percent > 100 {
		percent = 100
	}
	reporter.LoadProgress(percent)
}

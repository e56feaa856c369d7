// Package playback implements the Playback Engine (C4): it paces
// consumption of rendered frames to wall-clock time, writes each frame to
// the terminal, and overlays a status line.
package playback

import (
	"context"
	"io"
	"time"

	"github.com/five82/flicker/internal/framestore"
)

// controlsLegend is the single-line key-binding reminder shown in the
// status line (§4.4).
const controlsLegend = "space:pause  +/-:speed  ←/→:seek  ↑/↓:track  q:quit"

// pausePollInterval is how often the loop re-checks pause state while
// paused (§4.4 step b).
const pausePollInterval = 100 * time.Millisecond

// finishedRedrawInterval refreshes the FINISHED status line while waiting
// for the user in the post-playback sub-loop.
const finishedRedrawInterval = 250 * time.Millisecond

// Engine paces and displays one playback cycle.
type Engine struct {
	store     *framestore.Store
	w         io.Writer
	targetFPS uint8
}

// New creates an Engine writing to w, backed by store, at the given
// target frame rate.
func New(store *framestore.Store, w io.Writer, targetFPS uint8) *Engine {
	return &Engine{store: store, w: w, targetFPS: targetFPS}
}

// Run executes the loop contract of §4.4 until the video ends naturally
// or the cycle is cancelled, then returns the outcome: "finished" (natural
// end, the caller owns the cursor update), or the userAction recorded by
// the input reader ("next", "prev", "quit"). Per §4.4's termination
// convention, a cancellation with no recorded action returns "quit".
func (e *Engine) Run(ctx context.Context) string {
	for {
		if ctx.Err() != nil {
			return e.outcome()
		}

		if e.store.IsPaused() {
			e.writeStatus("PAUSED")
			select {
			case <-ctx.Done():
				return e.outcome()
			case <-time.After(pausePollInterval):
			}
			continue
		}

		current := e.store.CurrentFrame()

		if e.naturalEnd(current) {
			return e.finishedSubLoop(ctx)
		}

		if !e.store.ReadyUpTo(current) {
			e.writeStatus("BUFFERING")
			if err := e.store.Wait(ctx, current); err != nil {
				return e.outcome()
			}
			continue
		}

		if e.naturalEnd(current) {
			return e.finishedSubLoop(ctx)
		}

		start := time.Now()
		buf, _ := e.store.Get(current)
		e.writeFrame(buf)
		e.writeStatus("PLAYING")

		remainder := e.periodAt(e.store.SpeedMultiplier()) - time.Since(start)
		if remainder > 0 {
			select {
			case <-ctx.Done():
				return e.outcome()
			case <-time.After(remainder):
			}
		}

		e.store.Advance()
	}
}

// naturalEnd implements §4.4's termination conditions, including the
// totalFrames=0 boundary behavior from §8: the loop ends once nothing
// further is coming and the display has caught up. Uses current >
// total (rather than >=) so the last frame, at index == totalFrames, is
// still displayed — matching the worked happy-path example in §8, which
// has the engine display frame 30 of a 30-frame video before entering
// FINISHED.
func (e *Engine) naturalEnd(current int) bool {
	if !e.store.ExtractionComplete() {
		return false
	}
	total := e.store.TotalFrames()
	if total > 0 {
		return current > total
	}
	return current > e.store.LastRenderedFrame()
}

// outcome returns the userAction recorded by the input reader, defaulting
// to "quit" per §4.4's outermost-control convention.
func (e *Engine) outcome() string {
	if action := e.store.UserAction(); action != "" {
		return action
	}
	return "quit"
}

// finishedSubLoop displays FINISHED and waits for a track-change or quit
// key; those are delivered as a cancellation of ctx by the input reader
// (§4.4 Finished state sub-loop).
func (e *Engine) finishedSubLoop(ctx context.Context) string {
	e.writeStatus("FINISHED")
	for {
		select {
		case <-ctx.Done():
			action := e.store.UserAction()
			if action == "" {
				return "finished"
			}
			return action
		case <-time.After(finishedRedrawInterval):
			e.writeStatus("FINISHED")
		}
	}
}

// periodAt returns 1s / (targetFps * speed), the frame period at a given
// speed multiplier (§4.4 Frame period). Called fresh each tick since speed
// can change mid-playback.
func (e *Engine) periodAt(speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	seconds := 1.0 / (float64(e.targetFPS) * speed)
	return time.Duration(seconds * float64(time.Second))
}

func (e *Engine) writeFrame(buf []byte) {
	io.WriteString(e.w, "\x1b[H")
	if len(buf) > 0 {
		e.w.Write(buf)
	}
}

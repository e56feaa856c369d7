package control

import (
	"context"
	"os"
	"sync"

	"github.com/five82/flicker/internal/framestore"
)

// cycle bundles the per-video state the input reader mutates. It is
// swapped out by the playlist control loop between cycles while the
// reader itself lives for the whole process (§4.5 Cancellation scope).
type cycle struct {
	store     *framestore.Store
	cancel    context.CancelFunc
	targetFPS uint8
}

// Reader is the single reader of terminal input for the process
// lifetime (§4.5 Input reader).
type Reader struct {
	mu  sync.Mutex
	cur *cycle
}

// NewReader creates an idle input reader; call SetCycle before playback
// starts so keypresses have somewhere to go.
func NewReader() *Reader {
	return &Reader{}
}

// SetCycle attaches the reader to a new playback cycle.
func (r *Reader) SetCycle(store *framestore.Store, cancel context.CancelFunc, targetFPS uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = &cycle{store: store, cancel: cancel, targetFPS: targetFPS}
}

// ClearCycle detaches the reader from the ended cycle so stray keypresses
// between cycles are no-ops.
func (r *Reader) ClearCycle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = nil
}

func (r *Reader) current() *cycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur
}

// Run reads up to 3 bytes per syscall (to capture escape sequences) for
// the process lifetime and interprets them per §4.5's table. It returns
// when ctx is done; a blocked Read on stdin is abandoned at process exit
// (stdin closing) rather than force-unblocked, per §5's allowance for
// either strategy.
func (r *Reader) Run(ctx context.Context) {
	buf := make([]byte, 3)
	for {
		if ctx.Err() != nil {
			return
		}
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		r.handle(buf[:n])
	}
}

func (r *Reader) handle(b []byte) {
	c := r.current()
	if c == nil || len(b) == 0 {
		return
	}

	switch {
	case b[0] == 0x20: // space
		c.store.TogglePause()
	case b[0] == '+':
		c.store.IncSpeed()
	case b[0] == '-':
		c.store.DecSpeed()
	case b[0] == 'q' || b[0] == 0x03:
		c.store.SetUserAction("quit")
		c.cancel()
	case len(b) == 3 && b[0] == 0x1b && b[1] == '[':
		switch b[2] {
		case 'A': // Up
			c.store.SetUserAction("prev")
			c.cancel()
		case 'B': // Down
			c.store.SetUserAction("next")
			c.cancel()
		case 'C': // Right: seek forward
			r.seek(c, int(c.targetFPS)*5)
		case 'D': // Left: seek backward
			r.seek(c, -int(c.targetFPS)*5)
		}
	}
}

// seek reassigns currentFrame by delta frames, clamped per §8 Seek
// safety: 1 ≤ currentFrame ≤ max(1, totalFrames-1) when totalFrames is
// known, else only the lower bound applies.
func (r *Reader) seek(c *cycle, delta int) {
	target := c.store.CurrentFrame() + delta

	if target < 1 {
		target = 1
	}
	if total := c.store.TotalFrames(); total > 0 {
		max := total - 1
		if max < 1 {
			max = 1
		}
		if target > max {
			target = max
		}
	}
	c.store.SetCurrentFrame(target)
}

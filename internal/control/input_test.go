package control

import (
	"context"
	"testing"

	"github.com/five82/flicker/internal/framestore"
)

func newTestCycle(targetFPS uint8) (*Reader, *framestore.Store, context.Context) {
	store := framestore.New(64, 150)
	ctx, cancel := context.WithCancel(context.Background())
	r := NewReader()
	r.SetCycle(store, cancel, targetFPS)
	return r, store, ctx
}

func TestSpacePausesAndResumes(t *testing.T) {
	r, store, _ := newTestCycle(15)
	initial := store.IsPaused()

	r.handle([]byte{0x20})
	if store.IsPaused() == initial {
		t.Fatal("expected pause state to flip")
	}
	r.handle([]byte{0x20})
	if store.IsPaused() != initial {
		t.Fatal("toggling twice should return to the initial state")
	}
}

func TestQuitSetsActionAndCancels(t *testing.T) {
	r, store, ctx := newTestCycle(15)
	r.handle([]byte{'q'})

	if store.UserAction() != "quit" {
		t.Fatalf("userAction = %q, want quit", store.UserAction())
	}
	if ctx.Err() == nil {
		t.Fatal("expected cycle context to be cancelled")
	}
}

func TestArrowKeysSetTrackChangeActions(t *testing.T) {
	r, store, _ := newTestCycle(15)
	r.handle([]byte{0x1b, '[', 'B'})
	if store.UserAction() != "next" {
		t.Fatalf("userAction = %q, want next", store.UserAction())
	}

	r2, store2, _ := newTestCycle(15)
	r2.handle([]byte{0x1b, '[', 'A'})
	if store2.UserAction() != "prev" {
		t.Fatalf("userAction = %q, want prev", store2.UserAction())
	}
}

func TestSeekForwardThenBackwardIsIdentity(t *testing.T) {
	r, store, _ := newTestCycle(15)
	store.SetCurrentFrame(50)

	r.handle([]byte{0x1b, '[', 'C'}) // +75
	r.handle([]byte{0x1b, '[', 'D'}) // -75

	if got := store.CurrentFrame(); got != 50 {
		t.Fatalf("currentFrame = %d, want 50 (seek forward/backward should cancel out)", got)
	}
}

func TestSeekClampsToBounds(t *testing.T) {
	r, store, _ := newTestCycle(15) // totalFrames = 150
	store.SetCurrentFrame(1)

	r.handle([]byte{0x1b, '[', 'D'}) // would go negative
	if got := store.CurrentFrame(); got != 1 {
		t.Fatalf("currentFrame = %d, want clamped to 1", got)
	}

	store.SetCurrentFrame(149)
	r.handle([]byte{0x1b, '[', 'C'}) // would exceed totalFrames-1
	if got := store.CurrentFrame(); got != 149 {
		t.Fatalf("currentFrame = %d, want clamped to totalFrames-1 (149)", got)
	}
}

func TestHandleIsNoOpWithoutACycle(t *testing.T) {
	r := NewReader()
	// Should not panic when no cycle is attached.
	r.handle([]byte{'q'})
}

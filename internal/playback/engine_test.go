package playback

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/five82/flicker/internal/framestore"
)

func TestFormatMMSS(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{2, "00:02"},
		{65, "01:05"},
		{-1, "00:00"},
	}
	for _, c := range cases {
		if got := formatMMSS(c.seconds); got != c.want {
			t.Errorf("formatMMSS(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestRunPlaysAllFramesThenFinishes(t *testing.T) {
	store := framestore.New(64, 5)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		if err := store.Put(ctx, i, []byte("frame")); err != nil {
			t.Fatal(err)
		}
	}
	store.MarkExtractionComplete()

	var out bytes.Buffer
	e := New(store, &out, 100) // fast fps so the test doesn't wait long

	cctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result := e.Run(cctx)
	if result != "finished" {
		t.Fatalf("Run() = %q, want finished", result)
	}
	if store.CurrentFrame() < 5 {
		t.Fatalf("currentFrame = %d, want to have reached the last frame", store.CurrentFrame())
	}
}

func TestRunReturnsQuitOnCancellationWithoutAction(t *testing.T) {
	store := framestore.New(64, 0) // totalFrames unknown: loop will block on BUFFERING
	var out bytes.Buffer
	e := New(store, &out, 15)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan string, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case result := <-done:
		if result != "quit" {
			t.Fatalf("Run() = %q, want quit (no userAction recorded)", result)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunHonorsUserActionOnCancellation(t *testing.T) {
	store := framestore.New(64, 0)
	var out bytes.Buffer
	e := New(store, &out, 15)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan string, 1)
	go func() { done <- e.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	store.SetUserAction("next")
	cancel()

	select {
	case result := <-done:
		if result != "next" {
			t.Fatalf("Run() = %q, want next", result)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

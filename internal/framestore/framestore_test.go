package framestore

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPutThenWaitWakesUp(t *testing.T) {
	s := New(8, 10)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- s.Wait(ctx, 3)
	}()

	// Give the waiter a chance to park before we satisfy it.
	time.Sleep(10 * time.Millisecond)

	if err := s.Put(ctx, 1, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, 2, []byte("b")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, 3, []byte("c")); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait never woke up after Put satisfied readiness")
	}

	if got := s.LastRenderedFrame(); got != 3 {
		t.Fatalf("lastRenderedFrame = %d, want 3", got)
	}
}

func TestOutOfOrderPutAdvancesContiguousPrefixOnly(t *testing.T) {
	s := New(8, 10)
	ctx := context.Background()

	_ = s.Put(ctx, 2, []byte("b"))
	if got := s.LastRenderedFrame(); got != 0 {
		t.Fatalf("lastRenderedFrame = %d, want 0 (gap at 1)", got)
	}

	_ = s.Put(ctx, 1, []byte("a"))
	if got := s.LastRenderedFrame(); got != 2 {
		t.Fatalf("lastRenderedFrame = %d, want 2 after filling the gap", got)
	}
}

func TestWaitWakesOnCancellation(t *testing.T) {
	s := New(8, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Wait(ctx, 5)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected Wait to return the cancellation error")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake up on cancellation")
	}
}

func TestPutBlocksUntilRoomAvailable(t *testing.T) {
	s := New(2, 100) // headroom 2: currentFrame(1) + 2 = room for indices < 3
	ctx := context.Background()

	if err := s.Put(ctx, 1, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, 2, []byte("b")); err != nil {
		t.Fatal(err)
	}

	blocked := make(chan error, 1)
	go func() {
		blocked <- s.Put(ctx, 3, []byte("c"))
	}()

	select {
	case <-blocked:
		t.Fatal("Put(3, ...) should have blocked: no room in the ring yet")
	case <-time.After(50 * time.Millisecond):
	}

	s.Advance() // currentFrame -> 2, room for index < 4 now

	select {
	case err := <-blocked:
		if err != nil {
			t.Fatalf("Put returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Put never unblocked after Advance freed room")
	}
}

func TestReadyUpToWithUnknownTotalFrames(t *testing.T) {
	s := New(8, 0)
	if s.ReadyUpTo(1) {
		t.Fatal("should not be ready before extraction completes")
	}
	s.MarkExtractionComplete()
	if !s.ReadyUpTo(1) {
		t.Fatal("should be ready once extraction completes with totalFrames unknown")
	}
}

func TestPauseToggleIdempotenceLaw(t *testing.T) {
	s := New(8, 10)
	initial := s.IsPaused()
	s.TogglePause()
	s.TogglePause()
	if s.IsPaused() != initial {
		t.Fatal("toggling pause an even number of times should be identity")
	}
}

func TestSpeedClampingStaysWithinLadder(t *testing.T) {
	s := New(8, 10)
	for i := 0; i < 20; i++ {
		s.IncSpeed()
	}
	if idx := s.SpeedIndex(); idx != len(SpeedLadder)-1 {
		t.Fatalf("speedIndex = %d, want clamped to %d", idx, len(SpeedLadder)-1)
	}
	for i := 0; i < 20; i++ {
		s.DecSpeed()
	}
	if idx := s.SpeedIndex(); idx != 0 {
		t.Fatalf("speedIndex = %d, want clamped to 0", idx)
	}
}

func TestConcurrentPutsEachIndexOnce(t *testing.T) {
	s := New(256, 200)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = s.Put(ctx, idx, []byte{byte(idx)})
		}(i)
	}
	wg.Wait()

	if got := s.LastRenderedFrame(); got != 100 {
		t.Fatalf("lastRenderedFrame = %d, want 100", got)
	}
}

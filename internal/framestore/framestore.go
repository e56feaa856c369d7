// Package framestore implements the Frame Store (C3) and the shared
// playback-state variables it is paired with. Per the concurrency model,
// both live behind a single mutex and a single condition variable so every
// write can broadcast without losing a wakeup — no other lock is needed
// anywhere in the pipeline.
package framestore

import (
	"context"
	"sync"
)

// Store is a ring-buffered, ordered collection of rendered frames indexed
// by frame number, plus the playback-state fields that the control plane
// and playback engine mutate and observe (currentFrame, pause, speed,
// userAction, extraction completion).
type Store struct {
	mu   sync.Mutex
	cond *sync.Cond

	ring         map[int][]byte
	ringHeadroom int

	lastRenderedFrame  int
	totalFrames        int
	extractionComplete bool

	currentFrame int
	isPaused     bool
	speedIndex   int
	userAction   string
}

// SpeedLadder mirrors config.SpeedLadder; duplicated here as a plain value
// so this package has no dependency on config (it is a low-level
// primitive shared by both the control plane and the playback engine).
var SpeedLadder = [7]float64{0.25, 0.50, 0.75, 1.00, 1.25, 1.50, 2.00}

const DefaultSpeedIndex = 3

// New creates a Store with the given ring headroom (number of frames of
// slack kept beyond currentFrame before producers block) and an initial
// totalFrames estimate (0 if unknown).
func New(ringHeadroom, totalFrames int) *Store {
	s := &Store{
		ring:         make(map[int][]byte),
		ringHeadroom: ringHeadroom,
		totalFrames:  totalFrames,
		currentFrame: 1,
		speedIndex:   DefaultSpeedIndex,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// watchCancel wakes every waiter once ctx is done. Callers that block on
// s.cond.Wait must race it against this.
func (s *Store) watchCancel(ctx context.Context) {
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	}()
}

// SetTotalFrames records the duration-derived frame count estimate.
func (s *Store) SetTotalFrames(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalFrames = n
}

// TotalFrames returns the current estimate (0 if unknown).
func (s *Store) TotalFrames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalFrames
}

// MarkExtractionComplete sets the sticky extraction-complete flag and
// wakes anyone waiting on readiness.
func (s *Store) MarkExtractionComplete() {
	s.mu.Lock()
	s.extractionComplete = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// ExtractionComplete reports whether the decoder has terminated.
func (s *Store) ExtractionComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extractionComplete
}

// LastRenderedFrame returns the high-water mark: the largest N such that
// frames 1..N are all present.
func (s *Store) LastRenderedFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRenderedFrame
}

// readyUpToLocked implements §4.3's readyUpTo predicate. Caller holds mu.
func (s *Store) readyUpToLocked(i int) bool {
	return s.lastRenderedFrame >= i || (s.extractionComplete && i > s.totalFrames)
}

// Put writes buf at index i, as a converter worker does exactly once per
// frame. It blocks until room is available in the ring (backpressure) or
// ctx is cancelled. buf may be nil to represent a skipped (render-failed)
// frame.
func (s *Store) Put(ctx context.Context, i int, buf []byte) error {
	s.watchCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.roomAvailableLocked(i) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.cond.Wait()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.ring[i] = buf
	s.advanceHighWaterLocked()
	s.cond.Broadcast()
	return nil
}

// roomAvailableLocked reports whether the ring has a free slot for index i
// given the current display position. Caller holds mu.
func (s *Store) roomAvailableLocked(i int) bool {
	return i < s.currentFrame+s.ringHeadroom
}

// advanceHighWaterLocked recomputes the contiguous prefix after a write.
// Caller holds mu.
func (s *Store) advanceHighWaterLocked() {
	for {
		if _, ok := s.ring[s.lastRenderedFrame+1]; ok {
			s.lastRenderedFrame++
		} else {
			break
		}
	}
}

// Get returns the stored buffer for index i, if present. ok is false if
// the frame has not arrived (or has fallen out of the ring).
func (s *Store) Get(i int) (buf []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf, ok = s.ring[i]
	return
}

// ReadyUpTo reports whether frame i can be consumed now, per §4.3.
func (s *Store) ReadyUpTo(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyUpToLocked(i)
}

// Wait blocks until ReadyUpTo(i) or ctx is cancelled.
func (s *Store) Wait(ctx context.Context, i int) error {
	s.watchCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.readyUpToLocked(i) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.cond.Wait()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// Advance moves currentFrame forward by one, evicts the frame that just
// fell out of the ring headroom, and wakes any producer blocked on room
// availability.
func (s *Store) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	evict := s.currentFrame - 1
	delete(s.ring, evict)
	s.currentFrame++
	s.cond.Broadcast()
}

// CurrentFrame returns the next index to display.
func (s *Store) CurrentFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentFrame
}

// SetCurrentFrame reassigns currentFrame (used by seeks), clamped to
// [1, max(1, totalFrames-1)] by the caller per §8 Seek safety. It does not
// flush or reorder the store (§4.5 Seek semantics).
func (s *Store) SetCurrentFrame(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFrame = i
	s.cond.Broadcast()
}

// TogglePause flips isPaused and returns the new value.
func (s *Store) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isPaused = !s.isPaused
	return s.isPaused
}

// IsPaused reports the current pause state.
func (s *Store) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPaused
}

// IncSpeed raises speedIndex by one, clamped to the ladder max, and
// returns the new index.
func (s *Store) IncSpeed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speedIndex < len(SpeedLadder)-1 {
		s.speedIndex++
	}
	return s.speedIndex
}

// DecSpeed lowers speedIndex by one, clamped to the ladder min, and
// returns the new index.
func (s *Store) DecSpeed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speedIndex > 0 {
		s.speedIndex--
	}
	return s.speedIndex
}

// SpeedMultiplier returns the current ladder multiplier.
func (s *Store) SpeedMultiplier() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SpeedLadder[s.speedIndex]
}

// SpeedIndex returns the raw ladder index.
func (s *Store) SpeedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speedIndex
}

// SetUserAction records the action the input reader observed ("next",
// "prev", or "quit") and wakes anyone waiting on the store (cancellation
// is expected to accompany this via the cycle's context).
func (s *Store) SetUserAction(action string) {
	s.mu.Lock()
	s.userAction = action
	s.cond.Broadcast()
	s.mu.Unlock()
}

// UserAction returns the last recorded action.
func (s *Store) UserAction() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userAction
}

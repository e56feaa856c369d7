package converter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/flicker/internal/framestore"
)

func TestNormalizeLineEndings(t *testing.T) {
	in := []byte("line one\nline two\r\nline three\n")
	got := string(normalizeLineEndings(in))
	want := "line one\r\nline two\r\nline three\r\n"
	if got != want {
		t.Fatalf("normalizeLineEndings() = %q, want %q", got, want)
	}
}

func TestDispatchStopsWhenExtractionCompleteAndImageAbsent(t *testing.T) {
	scratch := t.TempDir()
	if err := os.Mkdir(filepath.Join(scratch, "images"), 0755); err != nil {
		t.Fatal(err)
	}
	// Only frame 1 exists; extraction completes before frame 2 appears.
	if err := os.WriteFile(imagePath(scratch, 1), []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}

	store := framestore.New(8, 0)
	jobs := make(chan renderJob, 10)

	go func() {
		time.Sleep(30 * time.Millisecond)
		store.MarkExtractionComplete()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := dispatch(ctx, scratch, store, jobs); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}

	var got []renderJob
	for j := range jobs {
		got = append(got, j)
	}
	if len(got) != 1 || got[0].index != 1 {
		t.Fatalf("dispatch jobs = %v, want exactly frame 1", got)
	}
}

func TestDispatchStopsOnCancellation(t *testing.T) {
	scratch := t.TempDir()
	if err := os.Mkdir(filepath.Join(scratch, "images"), 0755); err != nil {
		t.Fatal(err)
	}

	store := framestore.New(8, 0)
	jobs := make(chan renderJob, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dispatch(ctx, scratch, store, jobs) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected dispatch to return a cancellation error")
		}
	case <-time.After(time.Second):
		t.Fatal("dispatch did not stop on cancellation")
	}
}

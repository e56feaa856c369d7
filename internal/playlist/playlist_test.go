package playlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	names := []string{"b.mp4", "a.mkv", "c.txt", ".hidden.mp4", "sub"}
	for _, n := range names {
		if n == "sub" {
			if err := os.Mkdir(filepath.Join(dir, n), 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pl, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if pl.Len() != 2 {
		t.Fatalf("want 2 videos, got %d", pl.Len())
	}
	if filepath.Base(pl.Current()) != "a.mkv" {
		t.Fatalf("want a.mkv first, got %s", pl.Current())
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	pl, err := Discover(path)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if pl.Len() != 1 || pl.Current() != path {
		t.Fatalf("want single-item playlist with %s, got %v", path, pl)
	}
}

func TestCursorNextPrevWithLoop(t *testing.T) {
	pl := &Playlist{files: []string{"a", "b", "c"}}

	if !pl.Next(false) || pl.Current() != "b" {
		t.Fatalf("expected to advance to b")
	}
	if !pl.Next(false) || pl.Current() != "c" {
		t.Fatalf("expected to advance to c")
	}
	if pl.Next(false) {
		t.Fatalf("expected Next to fail at end without loop")
	}
	if !pl.Next(true) || pl.Current() != "a" {
		t.Fatalf("expected loop to wrap to a")
	}
	if pl.Prev(false) || pl.Current() != "a" {
		t.Fatalf("expected Prev to fail at start without loop")
	}
	if !pl.Prev(true) || pl.Current() != "c" {
		t.Fatalf("expected loop to wrap back to c")
	}
}

func TestNoVideoFilesError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(dir); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

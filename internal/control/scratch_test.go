package control

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateScratchAndCleanup(t *testing.T) {
	s, err := CreateScratch()
	if err != nil {
		t.Fatalf("CreateScratch: %v", err)
	}

	info, err := os.Stat(filepath.Join(s.Path(), "images"))
	if err != nil {
		t.Fatalf("images subdirectory missing: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("images path is not a directory")
	}

	if err := s.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("scratch directory still exists after Cleanup: %v", err)
	}

	// Cleanup must be idempotent.
	if err := s.Cleanup(); err != nil {
		t.Fatalf("second Cleanup call returned error: %v", err)
	}
}

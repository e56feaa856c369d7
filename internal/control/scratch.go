package control

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// tmpfsMagic is the Statfs_t.Type value for tmpfs on Linux.
const tmpfsMagic = 0x01021994

// memoryBackedCandidates are checked, in order, for a writable tmpfs
// mount that is not mounted noexec before falling back to the OS temp directory (§3 Scratch
// directory: "Preferred on a memory-backed filesystem if available").
var memoryBackedCandidates = []string{"/dev/shm", "/run/shm"}

// Scratch is a process-private, freshly created directory whose lifetime
// equals one playback cycle.
type Scratch struct {
	root string
}

// CreateScratch creates a fresh scratch directory with mode 0700 and an
// "images" subdirectory for decoder output, preferring a memory-backed
// filesystem.
func CreateScratch() (*Scratch, error) {
	base := pickBaseDir()

	suffix, err := randomSuffix(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scratch directory name: %w", err)
	}

	root := filepath.Join(base, fmt.Sprintf("flicker-%s", suffix))
	if err := os.MkdirAll(filepath.Join(root, "images"), 0700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Scratch{root: root}, nil
}

// Path returns the scratch directory's root.
func (s *Scratch) Path() string { return s.root }

// Cleanup removes the scratch directory and everything under it.
// Idempotent and safe to call multiple times on exit paths.
func (s *Scratch) Cleanup() error {
	if s.root == "" {
		return nil
	}
	return os.RemoveAll(s.root)
}

// pickBaseDir returns the first writable, memory-backed, exec-permitting
// candidate directory, or the OS default temp directory if none qualify.
func pickBaseDir() string {
	for _, candidate := range memoryBackedCandidates {
		if isMemoryBackedAndWritable(candidate) {
			return candidate
		}
	}
	return os.TempDir()
}

func isMemoryBackedAndWritable(path string) bool {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return false
	}
	if int64(stat.Type) != tmpfsMagic {
		return false
	}
	if stat.Flags&unix.ST_NOEXEC != 0 {
		return false
	}

	probe := filepath.Join(path, ".flicker_write_test")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return true
}

func randomSuffix(length int) (string, error) {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}

// Package playlist discovers and sequences video files for playback.
package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// videoExtensions is the known video extension set files are filtered to.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".webm": true,
	".avi":  true,
	".m4v":  true,
	".flv":  true,
	".ts":   true,
}

// IsVideoFile reports whether path has a recognized video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Playlist is an ordered, lexicographically sorted sequence of media paths
// with a single mutable cursor (§3).
type Playlist struct {
	files []string
	pos   int
}

// Discover builds a Playlist from source. If source is a directory its
// video files are listed, filtered, and sorted; if source is a single
// file the playlist contains just that file.
func Discover(source string) (*Playlist, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source not found: %w", err)
	}

	if !info.IsDir() {
		return &Playlist{files: []string{source}}, nil
	}

	files, err := findVideoFiles(source)
	if err != nil {
		return nil, err
	}
	return &Playlist{files: files}, nil
}

func findVideoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if IsVideoFile(full) {
			files = append(files, full)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no video files found in %s", dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}

// Len returns the number of items in the playlist.
func (p *Playlist) Len() int { return len(p.files) }

// Current returns the path at the cursor.
func (p *Playlist) Current() string { return p.files[p.pos] }

// Index returns the cursor position.
func (p *Playlist) Index() int { return p.pos }

// Next advances the cursor, wrapping around when loop is true. Returns
// false if the playlist is at its end and loop is false.
func (p *Playlist) Next(loop bool) bool {
	if p.pos+1 < len(p.files) {
		p.pos++
		return true
	}
	if loop {
		p.pos = 0
		return true
	}
	return false
}

// Prev moves the cursor back one item, wrapping around when loop is true.
// Returns false if already at the start and loop is false.
func (p *Playlist) Prev(loop bool) bool {
	if p.pos > 0 {
		p.pos--
		return true
	}
	if loop {
		p.pos = len(p.files) - 1
		return true
	}
	return false
}

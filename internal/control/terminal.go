// Package control implements the Control Plane (C5): the single raw
// input reader, terminal mode save/restore, and scratch directory
// lifecycle shared across playback cycles.
package control

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ANSI/VT sequences used for the terminal lifecycle (§6 Terminal).
const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqCursorHide   = "\x1b[?25l"
	seqCursorShow   = "\x1b[?25h"
	seqHome         = "\x1b[H"
	seqClear        = "\x1b[2J"
)

// Terminal owns the saved line-discipline snapshot and guarantees restore
// happens exactly once regardless of exit path (§4.5/§9 Global state).
type Terminal struct {
	fd       int
	w        io.Writer
	state    *term.State
	restored sync.Once
}

// Open saves the current terminal state, switches to the alternate
// screen, hides the cursor, and enters raw mode. Callers must defer
// Restore.
func Open(w io.Writer) (*Terminal, error) {
	fd := int(os.Stdin.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw terminal mode: %w", err)
	}

	t := &Terminal{fd: fd, w: w, state: state}
	fmt.Fprint(w, seqAltScreenOn, seqCursorHide, seqClear, seqHome)
	return t, nil
}

// Restore reverses Open: shows the cursor, leaves the alternate screen,
// and restores the saved line discipline. Idempotent — safe to call from
// a normal exit path, a deferred panic recovery, and a signal handler.
func (t *Terminal) Restore() {
	t.restored.Do(func() {
		fmt.Fprint(t.w, seqCursorShow, seqAltScreenOff)
		_ = term.Restore(t.fd, t.state)
	})
}

// Size returns the current terminal size in columns and rows.
func Size() (cols, rows int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// HomeAndClear moves the cursor to the display region's home position.
// It does not clear the screen.
func HomeAndClear(w io.Writer) {
	fmt.Fprint(w, seqHome)
}

package player

import (
	"context"
	"fmt"

	"github.com/five82/flicker/internal/playlist"
)

// Run discovers the playlist rooted at the configured source and plays
// through it, honoring track-change/quit actions and the loop flag,
// until the list is exhausted or the user quits (§4.4 Playlist control
// loop, GLOSSARY Playlist cursor).
func (s *Session) Run(ctx context.Context) error {
	pl, err := playlist.Discover(s.cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	for {
		outcome, err := s.runCycle(ctx, pl.Current())
		if err != nil {
			s.reporter.CycleError("cycle", err.Error())
			// A fatal error for one video does not abort the playlist;
			// advance the same way a natural end would.
			outcome = "finished"
		}

		if ctx.Err() != nil {
			return nil
		}

		switch outcome {
		case "quit":
			return nil
		case "prev":
			if !pl.Prev(s.cfg.Loop) {
				return nil
			}
		case "finished", "next":
			if !pl.Next(s.cfg.Loop) {
				return nil
			}
		default:
			return nil
		}
	}
}

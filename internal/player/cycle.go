// Package player implements the playlist control loop and the
// per-video cycle orchestration: scratch creation, decoder start,
// converter pool, playback engine, and teardown.
package player

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/five82/flicker/internal/config"
	"github.com/five82/flicker/internal/control"
	"github.com/five82/flicker/internal/converter"
	"github.com/five82/flicker/internal/decoder"
	"github.com/five82/flicker/internal/framestore"
	"github.com/five82/flicker/internal/playback"
)

// Reporter is the subset of reporting flicker's player needs; satisfied
// by internal/reporter.Reporter.
type Reporter interface {
	CycleStarted(source string)
	LoadProgress(percent float64)
	LoadComplete()
	CycleError(stage, message string)
	Warning(message string)
}

// Session ties a terminal, an input reader, and a reporter to the
// lifetime of a playback process (§4.5 Global state).
type Session struct {
	cfg      *config.Config
	term     *control.Terminal
	input    *control.Reader
	reporter Reporter
	out      io.Writer
}

// New creates a Session. w is the writer the playback engine paints
// frames and the status line to (normally the terminal itself via term).
func New(cfg *config.Config, term *control.Terminal, input *control.Reader, reporter Reporter, w io.Writer) *Session {
	return &Session{cfg: cfg, term: term, input: input, reporter: reporter, out: w}
}

// runCycle plays exactly one video end to end (§ GLOSSARY Cycle):
// scratch creation, decoder start, render pipeline, playback engine,
// scratch removal. It returns the outcome ("finished", "next", "prev",
// "quit") reported by the playback engine.
func (s *Session) runCycle(parent context.Context, source string) (string, error) {
	s.reporter.CycleStarted(source)

	scratch, err := control.CreateScratch()
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() {
		if err := scratch.Cleanup(); err != nil {
			s.reporter.Warning(fmt.Sprintf("failed to clean up scratch directory: %v", err))
		}
	}()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	boxW, boxH := s.cfg.PixelBox()
	if boxW == 0 || boxH == 0 {
		cols, rows, err := control.Size()
		if err != nil {
			cols, rows = 80, 24
		}
		if s.cfg.DisplayWidth == 0 {
			s.cfg.DisplayWidth = cols
		}
		if s.cfg.DisplayHeight == 0 {
			s.cfg.DisplayHeight = rows - 1 // reserve the status line
		}
		boxW, boxH = s.cfg.PixelBox()
	}

	meta, err := decoder.Probe(ctx, s.cfg.ProbeBinary, source)
	var totalFrames int
	if err != nil {
		s.reporter.Warning(fmt.Sprintf("could not determine duration: %v", err))
		totalFrames = 0
	} else {
		totalFrames = decoder.EstimateTotalFrames(meta.DurationSeconds, s.cfg.TargetFPS)
	}

	ringHeadroom := s.cfg.Workers + s.cfg.RingHeadroom
	if s.cfg.Mode == config.ModePreload {
		// Preload buffers the whole video before the first tick, so
		// currentFrame never advances (and nothing evicts) until the
		// contiguous prefix already reaches totalFrames. The ring must
		// be sized to hold every frame at once rather than the normal
		// streaming headroom, or producers wedge once they outrun it.
		if totalFrames > 0 {
			ringHeadroom = totalFrames + s.cfg.RingHeadroom
		} else {
			ringHeadroom = config.PreloadUnknownDurationHeadroom
		}
	}
	store := framestore.New(ringHeadroom, totalFrames)
	s.input.SetCycle(store, cancel, s.cfg.TargetFPS)
	defer s.input.ClearCycle()

	driver, err := decoder.Start(ctx, decoder.Options{
		Binary:     s.cfg.DecoderBinary,
		Source:     source,
		TargetFPS:  s.cfg.TargetFPS,
		ScaleMode:  s.cfg.ScaleMode,
		BoxW:       boxW,
		BoxH:       boxH,
		ScratchDir: scratch.Path(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start decoder: %w", err)
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if werr := driver.Wait(); werr != nil {
			s.reporter.Warning(fmt.Sprintf("decoder exited with an error: %v\n%s", werr, driver.Stderr()))
		}
		store.MarkExtractionComplete()
		return nil
	})

	group.Go(func() error {
		return converter.Pool(gctx, converter.Options{
			Binary:     s.cfg.ConverterBinary,
			Width:      s.cfg.DisplayWidth,
			Height:     s.cfg.DisplayHeight,
			ColorMode:  s.cfg.ColorMode,
			DitherMode: s.cfg.DitherMode,
			SymbolSet:  s.cfg.SymbolSet,
			NumWorkers: s.cfg.Workers,
			ScratchDir: scratch.Path(),
			RawMode:    true,
		}, store, func(format string, args ...any) {
			s.reporter.CycleError("render", fmt.Sprintf(format, args...))
		})
	})

	var result string
	group.Go(func() error {
		if s.cfg.Mode == config.ModePreload {
			waitForPreload(gctx, store, s.reporter)
		} else {
			waitForStartup(gctx, store, s.reporter)
		}
		engine := playback.New(store, s.out, s.cfg.TargetFPS)
		result = engine.Run(gctx)
		cancel() // tear down the decoder/converter pool once playback ends
		return nil
	})

	_ = group.Wait()

	if result == "" {
		result = "quit"
	}
	return result, nil
}

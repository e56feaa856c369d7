// Package converter implements the Converter Pool (C2): a dispatcher that
// walks frame indices in order, feeding a fixed pool of workers that each
// invoke the external image-to-terminal-art converter and store the
// result in the Frame Store.
package converter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/flicker/internal/config"
	"github.com/five82/flicker/internal/framestore"
)

// Options parameterizes the converter pool with the rendering knobs the
// external process needs (§6 Converter process).
type Options struct {
	Binary     string
	Width      int
	Height     int
	ColorMode  config.ColorMode
	DitherMode config.DitherMode
	SymbolSet  config.SymbolSet
	NumWorkers int
	ScratchDir string
	RawMode    bool // when true, normalize LF -> CRLF (§4.2 step 3)
}

type renderJob struct {
	index int
	path  string
}

// ErrorLogger receives converter failures. Pool calls it at most once per
// run, for the first failure across all workers, and not at all if that
// first failure happens after cancellation (§4.2 step 6).
type ErrorLogger func(format string, args ...any)

// Pool runs the dispatcher and its workers until ctx is cancelled or the
// dispatcher observes extraction-complete with no more images pending.
func Pool(ctx context.Context, opts Options, store *framestore.Store, logError ErrorLogger) error {
	jobs := make(chan renderJob, config.ConverterJobQueueDepth)
	var loggedOnce sync.Once

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return dispatch(gctx, opts.ScratchDir, store, jobs)
	})

	numWorkers := opts.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	for w := 0; w < numWorkers; w++ {
		group.Go(func() error {
			return worker(gctx, opts, store, jobs, logError, &loggedOnce)
		})
	}

	return group.Wait()
}

// dispatch walks frame indices from 1 upward, polling for each image
// artifact (the one sanctioned polling point in the system, per §9
// Suspension/async) and enqueueing render jobs in order.
func dispatch(ctx context.Context, scratchDir string, store *framestore.Store, jobs chan<- renderJob) error {
	defer close(jobs)

	ticker := time.NewTicker(config.DefaultDispatchPollMs * time.Millisecond)
	defer ticker.Stop()

	i := 1
	for {
		path := imagePath(scratchDir, i)
		for {
			if _, err := os.Stat(path); err == nil {
				break
			}
			if store.ExtractionComplete() {
				if _, err := os.Stat(path); err != nil {
					return nil // extractionComplete ∧ image for i absent: done
				}
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		select {
		case jobs <- renderJob{index: i, path: path}:
		case <-ctx.Done():
			return ctx.Err()
		}
		i++
	}
}

func imagePath(scratchDir string, index int) string {
	return filepath.Join(scratchDir, "images", fmt.Sprintf("frame-%05d.jpg", index))
}

// worker receives jobs, invokes the converter, and stores the result.
func worker(ctx context.Context, opts Options, store *framestore.Store, jobs <-chan renderJob, logError ErrorLogger, loggedOnce *sync.Once) error {
	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			buf, err := render(ctx, opts, job.path)
			if err != nil {
				if logError != nil {
					loggedOnce.Do(func() {
						if ctx.Err() == nil {
							logError("converter failed on frame %d: %v", job.index, err)
						}
					})
				}
				buf = nil // empty buffer: playback engine skips it
			}
			if err := store.Put(ctx, job.index, buf); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// render invokes the converter process on one image artifact and returns
// its rendered text buffer.
func render(ctx context.Context, opts Options, imagePath string) ([]byte, error) {
	binary := opts.Binary
	if binary == "" {
		binary = config.DefaultConverterBinary
	}

	args := []string{
		"--size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"--symbols", opts.SymbolSet.String(),
		"--colors", opts.ColorMode.String(),
		"--dither", opts.DitherMode.String(),
		imagePath,
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", binary, err)
	}

	if opts.RawMode {
		out = normalizeLineEndings(out)
	}
	return out, nil
}

// normalizeLineEndings translates bare LF to CRLF, required when the
// terminal is in raw mode and the line discipline no longer does it
// (§4.2 step 3).
func normalizeLineEndings(buf []byte) []byte {
	s := string(buf)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\r\n")
	return []byte(s)
}

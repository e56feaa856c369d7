// Package decoder implements the Decoder Driver (C1): it spawns and
// supervises the external frame-extractor process and reports metadata
// probed from the source ahead of it.
package decoder

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/five82/flicker/internal/config"
)

// stderrCapSize bounds how much decoder stderr is retained in memory;
// diagnostics beyond this are simply dropped, oldest bytes first.
const stderrCapSize = 64 * 1024

// boundedBuffer is a capped io.Writer that keeps only the most recent
// stderrCapSize bytes written to it.
type boundedBuffer struct {
	buf []byte
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if len(b.buf) > stderrCapSize {
		b.buf = b.buf[len(b.buf)-stderrCapSize:]
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string { return string(b.buf) }

// Options parameterizes a decode run; it is the part of Config the
// Decoder Driver actually needs, kept separate so this package does not
// import the full config surface.
type Options struct {
	Binary     string
	Source     string
	TargetFPS  uint8
	ScaleMode  config.ScaleMode
	BoxW       int
	BoxH       int
	ScratchDir string
}

// Driver supervises one decoder child process for one playback cycle.
type Driver struct {
	cmd    *exec.Cmd
	stderr *boundedBuffer
	done   chan error
}

// imagePattern is the output template named in §6: sequential 1-based
// indices zero-padded to a fixed width.
func imagePattern(scratchDir string) string {
	return filepath.Join(scratchDir, "images", "frame-%05d.jpg")
}

// filterChain builds the video filter graph string from §4.1/§6: a
// frame-rate selector, then a scale clause, then (for fill) a centered
// crop to the exact target.
func filterChain(opts Options) string {
	fps := fmt.Sprintf("fps=%d", opts.TargetFPS)

	var scale string
	switch opts.ScaleMode {
	case config.ScaleFill:
		scale = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
			opts.BoxW, opts.BoxH, opts.BoxW, opts.BoxH)
	case config.ScaleStretch:
		scale = fmt.Sprintf("scale=%d:%d", opts.BoxW, opts.BoxH)
	default: // ScaleFit
		scale = fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", opts.BoxW, opts.BoxH)
	}

	return fps + "," + scale
}

// Start launches the decoder process. The process inherits ctx: cancelling
// ctx kills it (§5 Cancellation and timeout).
func Start(ctx context.Context, opts Options) (*Driver, error) {
	binary := opts.Binary
	if binary == "" {
		binary = config.DefaultDecoderBinary
	}

	args := []string{
		"-y",
		"-loglevel", "warning",
		"-i", opts.Source,
		"-vf", filterChain(opts),
		"-q:v", "2",
		imagePattern(opts.ScratchDir),
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	stderr := &boundedBuffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start decoder %s: %w", binary, err)
	}

	d := &Driver{cmd: cmd, stderr: stderr, done: make(chan error, 1)}
	go func() {
		d.done <- cmd.Wait()
	}()
	return d, nil
}

// Wait blocks until the decoder process exits. A non-nil error means the
// process exited non-zero; per §4.1 this is recoverable: the cycle
// continues with whatever images were produced.
func (d *Driver) Wait() error {
	return <-d.done
}

// Stderr returns the decoder's captured stderr output, for surfacing
// after terminal restoration per §4.1 Failure semantics.
func (d *Driver) Stderr() string {
	return d.stderr.String()
}

// Package config provides configuration types and defaults for flicker.
package config

import (
	"fmt"
	"runtime"
)

// Default constants
const (
	// DefaultTargetFPS is the frame rate used when the caller does not
	// request one explicitly.
	DefaultTargetFPS uint8 = 15

	// MaxTargetFPS is the highest frame rate flicker will honor; converter
	// processes cannot keep up much beyond this on typical hardware.
	MaxTargetFPS uint8 = 60

	// CellWidthPx and CellHeightPx approximate one terminal character cell
	// in pixels and bound the decoder's pre-scale target (§4.1).
	CellWidthPx  = 8
	CellHeightPx = 16

	// DefaultRingHeadroom is the number of frames of headroom the ring
	// buffer keeps beyond the current display position, the same way
	// reel's AutoParallelConfig keeps a fixed prefetch buffer beyond the
	// worker count.
	DefaultRingHeadroom = 64

	// DefaultDecoderBinary, DefaultProbeBinary, and DefaultConverterBinary
	// name the external collaborators flicker invokes (§6).
	DefaultDecoderBinary    = "ffmpeg"
	DefaultProbeBinary      = "ffprobe"
	DefaultConverterBinary  = "chafa"
	DefaultDispatchPollMs   = 10
	ConverterJobQueueDepth  = 100
	SeekStepSeconds         = 5
	StartupLatencyBudgetMs  = 500
	PausePollIntervalMs     = 100
	CancellationGraceSecs   = 1

	// PreloadUnknownDurationHeadroom sizes the ring buffer for preload
	// mode when the probe couldn't determine totalFrames. It has to be
	// generous enough that extraction can run to completion without the
	// converter pool wedging against the ring before currentFrame ever
	// moves.
	PreloadUnknownDurationHeadroom = 100000
)

// AutoParallelConfig returns a default worker count and ring headroom.
// Workers default to the logical CPU count, the way reel's
// AutoParallelConfig defaults high and leaves capping to the caller.
func AutoParallelConfig() (workers, ringHeadroom int) {
	workers = runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	return workers, DefaultRingHeadroom
}

// Config holds all configuration for a playback session.
type Config struct {
	// Source selection
	SourcePath string // file or directory; directory implies a playlist

	// Display / rendering
	TargetFPS     uint8
	ScaleMode     ScaleMode
	ColorMode     ColorMode
	DitherMode    DitherMode
	SymbolSet     SymbolSet
	DisplayWidth  int // columns; 0 derives from terminal size
	DisplayHeight int // rows, excluding the status line; 0 derives

	// Pipeline
	Workers      int // converter pool size
	RingHeadroom int // ring buffer slots beyond currentFrame
	Mode         Mode

	// Playlist behavior
	Loop bool

	// CLI behavior
	Quiet   bool // suppress the initial-load progress bar
	Verbose bool
	NoLog   bool

	// External collaborators (§6)
	DecoderBinary   string
	ProbeBinary     string
	ConverterBinary string

	// Logging
	LogDir string
}

// NewConfig creates a new Config with default values for the given source.
func NewConfig(sourcePath string) *Config {
	workers, ringHeadroom := AutoParallelConfig()

	return &Config{
		SourcePath:      sourcePath,
		TargetFPS:       DefaultTargetFPS,
		ScaleMode:       ScaleFit,
		ColorMode:       Color256,
		DitherMode:      DitherNone,
		SymbolSet:       SymbolBlock,
		Workers:         workers,
		RingHeadroom:    ringHeadroom,
		Mode:            ModeStream,
		DecoderBinary:   DefaultDecoderBinary,
		ProbeBinary:     DefaultProbeBinary,
		ConverterBinary: DefaultConverterBinary,
	}
}

// Option configures a Config. Mirrors the functional-options pattern
// flicker's predecessor used for its library surface.
type Option func(*Config)

func WithTargetFPS(fps uint8) Option        { return func(c *Config) { c.TargetFPS = fps } }
func WithScaleMode(m ScaleMode) Option      { return func(c *Config) { c.ScaleMode = m } }
func WithColorMode(m ColorMode) Option      { return func(c *Config) { c.ColorMode = m } }
func WithDitherMode(m DitherMode) Option    { return func(c *Config) { c.DitherMode = m } }
func WithSymbolSet(s SymbolSet) Option      { return func(c *Config) { c.SymbolSet = s } }
func WithDisplaySize(w, h int) Option       { return func(c *Config) { c.DisplayWidth = w; c.DisplayHeight = h } }
func WithWorkers(n int) Option              { return func(c *Config) { c.Workers = n } }
func WithMode(m Mode) Option                { return func(c *Config) { c.Mode = m } }
func WithLoop(loop bool) Option             { return func(c *Config) { c.Loop = loop } }
func WithQuiet(quiet bool) Option           { return func(c *Config) { c.Quiet = quiet } }
func WithVerbose(verbose bool) Option       { return func(c *Config) { c.Verbose = verbose } }

// Apply mutates c with each option in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if c.TargetFPS < 1 || c.TargetFPS > MaxTargetFPS {
		return fmt.Errorf("target fps must be 1-%d, got %d", MaxTargetFPS, c.TargetFPS)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.RingHeadroom < 1 {
		return fmt.Errorf("ring headroom must be at least 1, got %d", c.RingHeadroom)
	}
	if c.DisplayWidth < 0 || c.DisplayHeight < 0 {
		return fmt.Errorf("display dimensions must be non-negative")
	}
	return nil
}

// PixelBox returns the decoder's pre-scale target in pixels for the
// configured display grid (§4.1).
func (c *Config) PixelBox() (w, h int) {
	return c.DisplayWidth * CellWidthPx, c.DisplayHeight * CellHeightPx
}

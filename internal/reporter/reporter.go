// Package reporter implements flicker's ambient reporting surface:
// colored terminal output before raw mode is entered or after it is
// restored, a file log mirroring the same events, and a Null
// implementation for embedding. The method set is specialized to
// flicker's pipeline (cycle lifecycle, decoder/converter errors,
// playlist transitions) rather than encode progress.
package reporter

// StartupInfo is shown once, before the terminal enters raw mode.
type StartupInfo struct {
	Source    string
	TargetFPS uint8
	ScaleMode string
	Workers   int
}

// Reporter receives lifecycle events from the playlist control loop and
// the per-cycle pipeline. Every method must be safe to call from
// multiple goroutines (decoder supervisor, converter workers, the
// control loop).
type Reporter interface {
	// Startup is emitted once per process before raw mode begins.
	Startup(info StartupInfo)

	// CycleStarted is emitted once per video, before its scratch
	// directory is created.
	CycleStarted(source string)

	// LoadProgress reports 0-100 progress through the initial-load
	// buffering window (§6 CLI surface: suppressed by --quiet).
	LoadProgress(percent float64)

	// LoadComplete signals the initial-load phase is done (playback is
	// starting); implementations should clear any progress indicator.
	LoadComplete()

	// CycleError reports a per-cycle error at the named stage: a
	// converter failure, or a cycle that could not run. Neither ends the
	// session.
	CycleError(stage, message string)

	// Warning reports a recoverable condition worth surfacing but not
	// treating as an error (§7).
	Warning(message string)

	// Shutdown is emitted once after the terminal is restored, typically
	// summarizing why the process exited.
	Shutdown(message string)
}

// NullReporter discards every event; useful for embedding flicker as a
// library without terminal output.
type NullReporter struct{}

func (NullReporter) Startup(StartupInfo)          {}
func (NullReporter) CycleStarted(string)          {}
func (NullReporter) LoadProgress(float64)         {}
func (NullReporter) LoadComplete()                {}
func (NullReporter) CycleError(string, string)    {}
func (NullReporter) Warning(string)               {}
func (NullReporter) Shutdown(string)              {}

var _ Reporter = NullReporter{}

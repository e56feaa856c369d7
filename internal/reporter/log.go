package reporter

import (
	"sync"

	"github.com/five82/flicker/internal/logging"
)

// LogReporter forwards session events to a *logging.Logger, picking the
// severity flicker's own domain calls for (cycle boundaries and
// completion at Info, buffering progress at Debug since it fires
// often, decoder/converter failures at Warn/Error) instead of
// re-implementing timestamp formatting itself.
type LogReporter struct {
	logger           *logging.Logger
	mu               sync.Mutex
	lastLoadedBucket int
}

// NewLogReporter creates a log reporter writing through logger. logger
// may be nil (logging disabled); every method becomes a no-op.
func NewLogReporter(logger *logging.Logger) *LogReporter {
	return &LogReporter{logger: logger, lastLoadedBucket: -1}
}

func (r *LogReporter) Startup(info StartupInfo) {
	r.logger.Info("=== FLICKER ===")
	r.logger.Info("Source: %s", info.Source)
	r.logger.Info("Target FPS: %d, scale: %s, workers: %d", info.TargetFPS, info.ScaleMode, info.Workers)
}

func (r *LogReporter) CycleStarted(source string) {
	r.mu.Lock()
	r.lastLoadedBucket = -1
	r.mu.Unlock()
	r.logger.Info("--- cycle start: %s ---", source)
}

// LoadProgress throttles to 10%-buckets, the way reel's own
// EncodingProgress throttles its 5%-buckets, and logs at Debug since
// it fires roughly every poll tick during buffering.
func (r *LogReporter) LoadProgress(percent float64) {
	bucket := int(percent / 10)
	r.mu.Lock()
	if bucket <= r.lastLoadedBucket {
		r.mu.Unlock()
		return
	}
	r.lastLoadedBucket = bucket
	r.mu.Unlock()
	r.logger.Debug("buffering: %.0f%%", percent)
}

func (r *LogReporter) LoadComplete() {
	r.logger.Info("buffering complete, playback starting")
}

func (r *LogReporter) CycleError(stage, message string) {
	r.logger.Error("[%s] %s", stage, message)
}

func (r *LogReporter) Warning(message string) {
	r.logger.Warn("%s", message)
}

func (r *LogReporter) Shutdown(message string) {
	r.logger.Info("=== SHUTDOWN === %s", message)
}

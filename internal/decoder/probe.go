package decoder

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/five82/flicker/internal/config"
)

// Metadata is what the probe process can tell us about the source ahead
// of decoding.
type Metadata struct {
	DurationSeconds float64
}

// Probe invokes the probe process once per cycle to read duration from
// the source's container metadata. Failure to obtain duration is not
// fatal (§6 Probe process): the caller proceeds with totalFrames = 0.
func Probe(ctx context.Context, binary, source string) (Metadata, error) {
	if binary == "" {
		binary = config.DefaultProbeBinary
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		source,
	)
	out, err := cmd.Output()
	if err != nil {
		return Metadata{}, fmt.Errorf("probe failed: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return Metadata{}, fmt.Errorf("probe returned unparseable duration: %w", err)
	}
	return Metadata{DurationSeconds: seconds}, nil
}

// EstimateTotalFrames derives totalFrames = ceil(duration * targetFps)
// per §4.1 Target rate. Returns 0 if duration is non-positive (unknown).
func EstimateTotalFrames(durationSeconds float64, targetFPS uint8) int {
	if durationSeconds <= 0 {
		return 0
	}
	return int(math.Ceil(durationSeconds * float64(targetFPS)))
}

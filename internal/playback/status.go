package playback

import (
	"fmt"
)

// writeStatus redraws the single status line on the terminal's bottom
// row per §4.4's format: state tag, time readout, speed readout, and the
// controls legend, concatenated with " | ".
func (e *Engine) writeStatus(state string) {
	line := fmt.Sprintf("%s | %s | Speed: %.2fx | %s",
		state, e.timeReadout(), e.store.SpeedMultiplier(), controlsLegend)
	fmt.Fprintf(e.w, "\x1b[s\x1b[999;1H\x1b[2K%s\x1b[u", line)
}

// timeReadout formats "MM:SS / MM:SS" from the current frame index and
// target FPS; the total half reads "??:??" when totalFrames is unknown.
func (e *Engine) timeReadout() string {
	current := e.store.CurrentFrame()
	currentSecs := 0
	if e.targetFPS > 0 {
		currentSecs = current / int(e.targetFPS)
	}

	total := e.store.TotalFrames()
	if total <= 0 {
		return fmt.Sprintf("%s / ??:??", formatMMSS(currentSecs))
	}

	totalSecs := 0
	if e.targetFPS > 0 {
		totalSecs = total / int(e.targetFPS)
	}
	return fmt.Sprintf("%s / %s", formatMMSS(currentSecs), formatMMSS(totalSecs))
}

func formatMMSS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

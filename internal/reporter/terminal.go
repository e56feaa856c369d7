package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly, colored text to the terminal.
// It must only be used before the terminal enters raw/alternate-screen
// mode, or after it has been restored — never during playback, which
// owns the screen exclusively.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	quiet    bool

	cyan    *color.Color
	green   *color.Color
	yellow  *color.Color
	red     *color.Color
	magenta *color.Color
	bold    *color.Color
	dim     *color.Color
}

// NewTerminalReporter creates a terminal reporter. When quiet is true the
// initial-load progress bar is suppressed (§6 CLI surface), but warnings,
// errors, and the startup/shutdown banners are never suppressed.
func NewTerminalReporter(quiet bool) *TerminalReporter {
	return &TerminalReporter{
		quiet:   quiet,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		dim:     color.New(color.Faint),
	}
}

func (r *TerminalReporter) printLabel(label, value string) {
	const labelWidth = 14
	fmt.Printf("  %s %s\n", r.bold.Sprint(fmt.Sprintf("%-*s", labelWidth, label)), value)
}

func (r *TerminalReporter) Startup(info StartupInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("FLICKER")
	r.printLabel("Source:", info.Source)
	r.printLabel("Target FPS:", fmt.Sprintf("%d", info.TargetFPS))
	r.printLabel("Scale mode:", info.ScaleMode)
	r.printLabel("Workers:", fmt.Sprintf("%d", info.Workers))
}

func (r *TerminalReporter) CycleStarted(source string) {
	fmt.Println()
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), r.bold.Sprint(source))
}

func (r *TerminalReporter) LoadProgress(percent float64) {
	if r.quiet {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		r.progress = progressbar.NewOptions64(100,
			progressbar.OptionSetDescription("buffering"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	clamped := percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	_ = r.progress.Set64(int64(clamped))
}

func (r *TerminalReporter) LoadComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) CycleError(stage, message string) {
	_, _ = fmt.Fprintf(os.Stderr, "%s [%s] %s\n", r.red.Sprint("ERROR"), stage, message)
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Shutdown(message string) {
	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Sprint("✓"), r.bold.Sprint(message))
}

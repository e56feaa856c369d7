// Package main provides the CLI entry point for flicker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/flicker/internal/config"
	"github.com/five82/flicker/internal/control"
	"github.com/five82/flicker/internal/logging"
	"github.com/five82/flicker/internal/player"
	"github.com/five82/flicker/internal/reporter"
)

const (
	appName    = "flicker"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "play":
		if err := runPlay(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Terminal video player

Usage:
  %s <command> [options]

Commands:
  play      Play a video file or a directory of video files
  version   Print version information
  help      Show this help message

Run '%s play --help' for play command options.
`, appName, appName, appName)
}

// playArgs holds the parsed arguments for the play command.
type playArgs struct {
	source     string
	targetFPS  uint
	scaleMode  string
	colorMode  string
	ditherMode string
	symbolSet  string
	mode       string
	loop       bool
	quiet      bool
	verbose    bool
	noLog      bool
	logDir     string
	workers    int
}

func runPlay(args []string) error {
	defaultWorkers, _ := config.AutoParallelConfig()

	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Play a video file or a directory of video files as terminal art.

Usage:
  %s play [options] <path>

Options:
  --fps <N>             Target playback frame rate. Default: %d
  --scale <MODE>        Pre-scale mode: fit, fill, stretch. Default: fit
  --color <MODE>        Color mode: 2, 16, 256, full. Default: 256
  --dither <MODE>       Dither mode: none, ordered, diffusion. Default: none
  --symbols <SET>       Symbol set: block, ascii, space. Default: block
  --mode <MODE>         Startup mode: stream, preload. Default: stream
  --loop                Loop the playlist instead of stopping at the end
  --quiet               Suppress the initial-load progress bar
  --verbose             Enable verbose logging
  --log-dir <PATH>      Log directory (defaults to ~/.local/state/flicker/logs)
  --no-log              Disable log file creation
  --workers <N>         Converter pool size. Default: %d (auto)

Controls:
  space                 Pause / resume
  + / -                 Speed up / slow down
  left / right          Seek backward / forward 5 seconds
  up / down             Previous / next in playlist
  q / ctrl-c            Quit
`, appName, config.DefaultTargetFPS, defaultWorkers)
	}

	var pa playArgs
	fs.UintVar(&pa.targetFPS, "fps", uint(config.DefaultTargetFPS), "Target playback frame rate")
	fs.StringVar(&pa.scaleMode, "scale", "fit", "Pre-scale mode")
	fs.StringVar(&pa.colorMode, "color", "256", "Color mode")
	fs.StringVar(&pa.ditherMode, "dither", "none", "Dither mode")
	fs.StringVar(&pa.symbolSet, "symbols", "block", "Symbol set")
	fs.StringVar(&pa.mode, "mode", "stream", "Startup mode")
	fs.BoolVar(&pa.loop, "loop", false, "Loop the playlist")
	fs.BoolVar(&pa.quiet, "quiet", false, "Suppress the initial-load progress bar")
	fs.BoolVar(&pa.verbose, "verbose", false, "Enable verbose logging")
	fs.StringVar(&pa.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&pa.noLog, "no-log", false, "Disable log file creation")
	fs.IntVar(&pa.workers, "workers", defaultWorkers, "Converter pool size")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("a source path is required")
	}
	pa.source = fs.Arg(0)

	return executePlay(pa)
}

func executePlay(pa playArgs) error {
	if _, err := os.Stat(pa.source); err != nil {
		return fmt.Errorf("source path does not exist: %s", pa.source)
	}

	cfg := config.NewConfig(pa.source)

	scaleMode, err := config.ParseScaleMode(pa.scaleMode)
	if err != nil {
		return err
	}
	colorMode, err := config.ParseColorMode(pa.colorMode)
	if err != nil {
		return err
	}
	ditherMode, err := config.ParseDitherMode(pa.ditherMode)
	if err != nil {
		return err
	}
	symbolSet, err := config.ParseSymbolSet(pa.symbolSet)
	if err != nil {
		return err
	}
	mode, err := config.ParseMode(pa.mode)
	if err != nil {
		return err
	}

	cfg.Apply(
		config.WithTargetFPS(uint8(pa.targetFPS)),
		config.WithScaleMode(scaleMode),
		config.WithColorMode(colorMode),
		config.WithDitherMode(ditherMode),
		config.WithSymbolSet(symbolSet),
		config.WithMode(mode),
		config.WithLoop(pa.loop),
		config.WithQuiet(pa.quiet),
		config.WithVerbose(pa.verbose),
		config.WithWorkers(pa.workers),
	)
	cfg.NoLog = pa.noLog

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logDir := pa.logDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}
	cfg.LogDir = logDir

	logger, err := logging.Setup(logDir, pa.verbose, pa.noLog, os.Args)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	termRep := reporter.NewTerminalReporter(pa.quiet)
	var rep reporter.Reporter = termRep
	if logger != nil {
		logRep := reporter.NewLogReporter(logger)
		rep = reporter.NewCompositeReporter(termRep, logRep)
	}

	rep.Startup(reporter.StartupInfo{
		Source:    pa.source,
		TargetFPS: cfg.TargetFPS,
		ScaleMode: cfg.ScaleMode.String(),
		Workers:   cfg.Workers,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	term, err := control.Open(os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer term.Restore()

	reader := control.NewReader()
	go reader.Run(ctx)

	sess := player.New(cfg, term, reader, rep, os.Stdout)
	runErr := sess.Run(ctx)

	term.Restore()

	if runErr != nil {
		rep.Shutdown(fmt.Sprintf("exited with an error: %v", runErr))
		return runErr
	}
	rep.Shutdown("playback finished")
	return nil
}

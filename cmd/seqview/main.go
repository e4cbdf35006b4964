// Package main is the entry point for the seqview genome browser.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/seqview/internal/app"
	"github.com/dshills/seqview/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	app app.Options

	pngPath      string
	pngWidth     int
	pngHeight    int
	snapshotPath string
}

func (o cliOptions) headless() bool {
	return o.pngPath != "" || o.snapshotPath != ""
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.headless() {
		// No terminal to draw on; logs go to stderr.
		opts.app.LogOutput = os.Stderr
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.headless() {
		return export(application, opts)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -png or -snapshot for headless output")
		return 1
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// export writes the requested headless outputs for the initial view.
func export(application *app.Application, opts cliOptions) int {
	if opts.pngPath != "" {
		if err := application.RenderPNG(opts.pngPath, opts.pngWidth, opts.pngHeight); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if opts.snapshotPath != "" {
		if err := application.WriteSnapshot(opts.snapshotPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.app.ConfigPath, "config", "seqview.toml", "Path to configuration file")
	flag.StringVar(&opts.app.ConfigPath, "c", "seqview.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.app.LogFile, "log-file", "", "Append logs to this file")
	flag.BoolVar(&opts.app.NoEnv, "no-env", false, "Ignore SEQVIEW_* environment variables")
	flag.Func("pos", "Initial centre position", func(s string) error {
		pos, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		opts.app.InitPos = &pos
		return nil
	})
	flag.Float64Var(&opts.app.InitWin, "win", 0, "Initial viewport width in bases")
	flag.StringVar(&opts.app.SnapshotPath, "snapshot-key-path", app.DefaultSnapshotPath, "File written by the snapshot key")
	flag.StringVar(&opts.pngPath, "png", "", "Render the initial view to a PNG file and exit")
	flag.IntVar(&opts.pngWidth, "png-width", 0, "PNG width in pixels")
	flag.IntVar(&opts.pngHeight, "png-height", 0, "PNG height in pixels")
	flag.StringVar(&opts.snapshotPath, "snapshot", "", "Write the initial view as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "seqview - terminal genome browser\n\n")
		fmt.Fprintf(os.Stderr, "Usage: seqview [options] track.json\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  h/l, arrows   pan        H/L, PgUp/PgDn  pan a page\n")
		fmt.Fprintf(os.Stderr, "  +/-           zoom       Home/End        jump to an end\n")
		fmt.Fprintf(os.Stderr, "  /             search     n               next match\n")
		fmt.Fprintf(os.Stderr, "  g             goto       s               snapshot\n")
		fmt.Fprintf(os.Stderr, "  q             quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  seqview chr1.json\n")
		fmt.Fprintf(os.Stderr, "  seqview -pos 12000 -win 400 chr1.json\n")
		fmt.Fprintf(os.Stderr, "  seqview -png view.png -png-width 1600 chr1.json\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("seqview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.app.TrackPath = flag.Arg(0)
	return opts
}

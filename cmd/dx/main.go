package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"dxwatch/internal/alert"
	"dxwatch/internal/config"
	"dxwatch/internal/domain"
	"dxwatch/internal/provider"
	"dxwatch/internal/render"
	"dxwatch/internal/tui"
	"dxwatch/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintf(os.Stderr, `dx - quick HF propagation check from the command line

Usage:
  dx [flags] [bands...]

Examples:
  dx                      current conditions, all bands
  dx 10m 15m              specific bands only
  dx --compact            one-line summary
  dx --json | jq '.bands["10m"].rating'
  dx --watch              auto-refresh every 60s
  dx --alert Good         exit 0 if any band >= Good, else exit 1

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	_ = godotenv.Load()

	jsonOut := flag.Bool("json", false, "JSON output for scripting")
	compact := flag.Bool("compact", false, "one-line compact output")
	asciiMode := flag.Bool("ascii", false, "ASCII symbols (no emoji)")
	watch := flag.Bool("watch", false, "auto-refresh continuously")
	interval := flag.Int("interval", 0, "refresh interval in seconds for --watch (default 60)")
	alertRating := flag.String("alert", "", "exit 0 if any band >= RATING (VeryPoor/Poor/Fair/Good/Excellent)")
	urlFlag := flag.String("url", "", "API endpoint URL (default DX_API_URL env or the public feed)")
	flag.Usage = usage
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	cfg := config.Load()
	if *urlFlag != "" {
		cfg.APIURL = *urlFlag
	}
	if *interval > 0 {
		cfg.WatchIntervalSecs = *interval
	}

	minRating := domain.RatingVeryPoor
	if *alertRating != "" {
		var ok bool
		if minRating, ok = domain.ParseRating(*alertRating); !ok {
			logger.Fatalf("unknown rating %q (use VeryPoor, Poor, Fair, Good or Excellent)", *alertRating)
		}
		if *watch {
			logger.Fatal("--alert and --watch are mutually exclusive")
		}
	}

	ctx := context.Background()
	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	feedClient := provider.NewDXFeedProvider(tracer, cfg.APIURL,
		time.Duration(cfg.RequestTimeoutSecs)*time.Second)
	opts := render.Options{Bands: flag.Args(), ASCII: *asciiMode}

	if *watch {
		model := tui.NewModel(feedClient, opts, time.Duration(cfg.WatchIntervalSecs)*time.Second)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			logger.Fatalf("watch mode: %v", err)
		}
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	snap, warnings, err := feedClient.Fetch(fetchCtx)
	if err != nil {
		logger.Fatalf("cannot read dx feed: %v", err)
	}
	for _, w := range warnings {
		logger.Warn(w.String())
	}

	if *alertRating != "" {
		met, alertWarnings := alert.Evaluate(snap, flag.Args(), minRating)
		for _, w := range alertWarnings {
			logger.Warn(w.String())
		}
		if !met {
			os.Exit(1)
		}
		return
	}

	var out string
	var renderWarnings []domain.Warning
	switch {
	case *jsonOut:
		out, renderWarnings = render.JSON(snap, opts)
	case *compact:
		out, renderWarnings = render.Compact(snap, opts)
	default:
		out, renderWarnings = render.Full(snap, opts)
	}
	for _, w := range renderWarnings {
		logger.Warn(w.String())
	}
	fmt.Println(out)
}

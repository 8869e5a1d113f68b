// Command ls-solar shows the position of the sun for an observer, in a
// terminal UI or as headless text and JSON output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/config"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/simple"
	"github.com/litescript/ls-solar/internal/spa"
	"github.com/litescript/ls-solar/internal/state"
	"github.com/litescript/ls-solar/internal/track"
	"github.com/litescript/ls-solar/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, fs, &opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.writeConfig != "" {
		if err := cfg.SaveTo(opts.writeConfig); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", opts.writeConfig)
		return nil
	}

	start, err := parseStart(opts.start, time.Now())
	if err != nil {
		return err
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	tui := !opts.headless() && isTTY

	// The TUI owns the terminal; logs go to the file only.
	var console io.Writer = os.Stderr
	if tui {
		console = nil
	}
	logger := logging.NewWithFile(logging.ParseLevel(cfg.Logging.Level), console, cfg.FileLogging())
	defer logger.Close()

	logger.Debug("site %s, delta-t %.1f s, model %s", cfg.Site, cfg.DeltaT, cfg.Track.Model)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.UI.Refresh
	stateMgr := state.NewManager(stateCfg)

	if !tui {
		if !opts.headless() {
			opts.harness = true
		}
		return runHeadless(ctx, cfg, &opts, start, stateMgr, logger)
	}

	model := ui.New(stateMgr, cfg.Params(start), logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	// The terminal is free again; shutdown messages go to stderr too.
	logger.SetOutput(os.Stderr)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Debug("TUI closed")
	return nil
}

// runHeadless handles all headless modes without starting the TUI. With
// -watch the clock advances in real time from the start instant.
func runHeadless(ctx context.Context, cfg *config.Config, opts *options, start time.Time, stateMgr *state.Manager, logger *logging.Logger) error {
	launched := time.Now()
	var lastEvent time.Time

	outputOnce := func() error {
		instant := start
		if opts.watch > 0 {
			instant = start.Add(time.Since(launched)).Truncate(time.Second)
		}

		if opts.harness || opts.summary || opts.snapshotPath != "" {
			computeStart := time.Now()
			tr, err := track.Compute(cfg.Params(instant))
			stateMgr.UpdateTrace(tr, time.Since(computeStart), err)
			if err != nil {
				return fmt.Errorf("compute track: %w", err)
			}
			logger.Debug("computed %d samples in %s", len(tr.Samples), time.Since(computeStart))
		}
		snap := stateMgr.Snapshot()

		if opts.nowMode {
			p, err := spa.Calculate(instant, cfg.Input())
			if err != nil {
				return fmt.Errorf("compute position: %w", err)
			}
			sp, spErr := simple.Calculate(cfg.Site.Latitude, cfg.Site.Longitude, instant)
			if spErr != nil {
				logger.Debug("simple model: %v", spErr)
			}
			stateMgr.UpdatePosition(p, sp, spErr)
			writeNow(os.Stdout, cfg, p, sp, spErr)

			for _, e := range stateMgr.Snapshot().Events {
				if e.Timestamp.After(lastEvent) {
					fmt.Fprintf(os.Stdout, "  %s at %s\n", e.Type, e.Timestamp.Format(time.RFC3339))
					lastEvent = e.Timestamp
				}
			}
		}

		if opts.snapshotPath != "" {
			if err := writeSnapshot(opts.snapshotPath, snap.Trace); err != nil {
				return err
			}
		}

		if opts.summary {
			track.WriteSummaryTable(os.Stdout, snap.Trace)
		}

		if opts.harness {
			if err := track.WriteHarness(os.Stdout, snap.Trace); err != nil {
				return fmt.Errorf("write harness: %w", err)
			}
		}
		return nil
	}

	// Single run
	if opts.watch == 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch loop shutting down")
			return nil
		case <-ticker.C:
			if !opts.nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				logger.Error("%v", err)
			}
		}
	}
}

func writeSnapshot(path string, tr *track.Trace) error {
	export := track.Export(tr)
	if path == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

// writeNow prints a one-line position from both models.
func writeNow(w io.Writer, cfg *config.Config, p spa.Position, sp simple.Position, spErr error) {
	fmt.Fprintf(w, "%s %s  el %.2f° az %.2f°  RA %s Dec %s",
		p.Time.Format(time.RFC3339), cfg.Site,
		p.Elevation, p.Azimuth,
		track.FormatRA(p.TopocentricRightAscension), track.FormatAngle(p.TopocentricDeclination))
	if spErr != nil {
		fmt.Fprintf(w, "  | simple: %v\n", spErr)
		return
	}
	fmt.Fprintf(w, "  | simple el %.2f° az %.2f°  %.0f W/m²\n",
		sp.Altitude, astro.Normalize360(180-sp.Azimuth), sp.Radiation)
}

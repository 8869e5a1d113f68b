package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/litescript/ls-solar/internal/config"
)

// options holds every command-line flag. Values only override the config
// when the flag was set explicitly.
type options struct {
	configPath string

	lat, lon, elev    float64
	deltaT            float64
	pressure, temp    float64
	slope, rotation   float64
	start             string
	interval          time.Duration
	steps             int
	model             string
	refresh           time.Duration
	logLevel, logFile string

	harness      bool
	summary      bool
	nowMode      bool
	snapshotPath string
	watch        time.Duration
	writeConfig  string
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("ls-solar", flag.ContinueOnError)

	fs.StringVar(&o.configPath, "config", "", "Config file (default: ./"+config.FileName+" or the user config dir)")
	fs.Float64Var(&o.lat, "lat", 0, "Observer latitude in degrees, north positive")
	fs.Float64Var(&o.lon, "lon", 0, "Observer longitude in degrees, east positive")
	fs.Float64Var(&o.elev, "elev", 0, "Observer elevation in meters")
	fs.Float64Var(&o.deltaT, "delta-t", 0, "TT - UT in seconds")
	fs.Float64Var(&o.pressure, "pressure", 0, "Annual average pressure in millibars")
	fs.Float64Var(&o.temp, "temp", 0, "Annual average temperature in Celsius")
	fs.Float64Var(&o.slope, "slope", 0, "Surface slope in degrees from horizontal")
	fs.Float64Var(&o.rotation, "azimuth-rotation", 0, "Surface azimuth rotation in degrees from south")
	fs.StringVar(&o.start, "start", "", "Start instant, RFC3339 or YYYY-MM-DD (default now)")
	fs.DurationVar(&o.interval, "interval", 0, "Sampling interval (e.g., 30m)")
	fs.IntVar(&o.steps, "steps", 0, "Number of samples")
	fs.StringVar(&o.model, "model", "", "Harness model (simple, spa)")
	fs.DurationVar(&o.refresh, "refresh", 0, "TUI refresh interval (e.g., 1s)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.logFile, "log-file", "", "Write logs to a rotating file")

	fs.BoolVar(&o.harness, "harness", false, "Print timestamp, altitude, azimuth and power for each daylight sample")
	fs.BoolVar(&o.summary, "summary", false, "Print a text summary table instead of the TUI")
	fs.BoolVar(&o.nowMode, "now", false, "Single-line current position")
	fs.StringVar(&o.snapshotPath, "snapshot-path", "", "Export JSON track to file (use - for stdout)")
	fs.DurationVar(&o.watch, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	fs.StringVar(&o.writeConfig, "write-config", "", "Write the effective config to a file and exit")

	return fs
}

// headless reports whether a mode flag selects output without the TUI.
func (o *options) headless() bool {
	return o.harness || o.summary || o.nowMode || o.snapshotPath != ""
}

// applyOverrides copies explicitly set flags into cfg.
func applyOverrides(cfg *config.Config, fs *flag.FlagSet, o *options) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			cfg.Site.Latitude = o.lat
			cfg.Site.Name = ""
		case "lon":
			cfg.Site.Longitude = o.lon
			cfg.Site.Name = ""
		case "elev":
			cfg.Site.Elevation = o.elev
		case "delta-t":
			cfg.DeltaT = o.deltaT
		case "pressure":
			cfg.Atmosphere = cfg.Atmosphere.OrStandard()
			cfg.Atmosphere.Pressure = o.pressure
		case "temp":
			cfg.Atmosphere = cfg.Atmosphere.OrStandard()
			cfg.Atmosphere.Temperature = o.temp
		case "slope":
			cfg.Surface.Slope = o.slope
		case "azimuth-rotation":
			cfg.Surface.AzimuthRotation = o.rotation
		case "interval":
			cfg.Track.Interval = o.interval
		case "steps":
			cfg.Track.Steps = o.steps
		case "model":
			cfg.Track.Model = o.model
		case "refresh":
			cfg.UI.Refresh = o.refresh
		case "log-level":
			cfg.Logging.Level = o.logLevel
		case "log-file":
			cfg.Logging.LogFile = o.logFile
		}
	})
}

// parseStart parses the -start flag. An empty value means now.
func parseStart(s string, now time.Time) (time.Time, error) {
	if s == "" || s == "now" {
		return now.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid -start %q: want RFC3339 or YYYY-MM-DD", s)
}

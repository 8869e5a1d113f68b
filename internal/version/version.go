// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Live TUI with elevation sparkline, sunrise/transit/sunset events, YAML config
// 0.2.0 - Track harness, daylight windows, JSON export, summary table
// 0.1.0 - Initial release: NREL SPA pipeline and simplified model with direct irradiance

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-solar/internal/track"
)

// SparklineWidth is the fixed width of the elevation sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// elevColorLow is the color just above the horizon (deep red).
var elevColorLow = [3]uint8{0x9a, 0x34, 0x12}

// elevColorMid is the color for mid elevation (orange).
var elevColorMid = [3]uint8{0xf9, 0x73, 0x16}

// elevColorHigh is the color for high elevation (pale yellow).
var elevColorHigh = [3]uint8{0xfd, 0xe0, 0x47}

// nightColor is used for cells with the sun below the horizon.
const nightColor = "238"

// renderElevationSparkline renders the track's elevations as a sparkline.
// Block heights are scaled to the peak of the window, colors to 90°.
func (m PositionModel) renderElevationSparkline() string {
	tr := m.snapshot.Trace
	if tr == nil {
		if m.snapshot.LastError != nil {
			return dimStyle.Render("Error: " + m.snapshot.LastError.Error())
		}
		return m.renderShimmerSparkline("Computing track...")
	}

	samples := resampleElevation(tr.Elevations(), SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("No samples")
	}

	peak := 1.0
	for _, el := range samples {
		if el > peak {
			peak = el
		}
	}

	marker := -1
	start, end := tr.Params.Start, tr.Params.End()
	if span := end.Sub(start); span > 0 && !m.clock.Before(start) && !m.clock.After(end) {
		marker = int(float64(m.clock.Sub(start)) / float64(span) * float64(SparklineWidth))
		if marker >= SparklineWidth {
			marker = SparklineWidth - 1
		}
	}

	var sb strings.Builder
	for i, elev := range samples {
		style := lipgloss.NewStyle()
		block := sparklineBlocks[0]
		if elev <= track.Horizon {
			style = style.Foreground(lipgloss.Color(nightColor))
		} else {
			idx := int(elev / peak * 7.0)
			if idx > 7 {
				idx = 7
			}
			if idx < 0 {
				idx = 0
			}
			block = sparklineBlocks[idx]
			r, g, b := interpolateElevColor(elev / 90.0)
			style = style.Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
		}
		if i == marker {
			style = style.Reverse(true)
		}
		sb.WriteString(style.Render(string(block)))
	}

	if s := tr.Current(m.clock); s != nil && marker >= 0 {
		nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", s.Precise.Elevation)))
	}

	return sb.String()
}

// renderShimmerSparkline renders a loading animation sparkline.
func (m PositionModel) renderShimmerSparkline(msg string) string {
	var sb strings.Builder

	offset := m.animTick % SparklineWidth
	for i := 0; i < SparklineWidth; i++ {
		dist := (i - offset + SparklineWidth) % SparklineWidth
		gray := 60
		if dist < 8 {
			gray += dist * 8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))

	return sb.String()
}

// interpolateElevColor returns RGB color for elevation value t in [0, 1].
// Gradient: low (deep red) → mid (orange) → high (pale yellow).
func interpolateElevColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := elevColorLow, elevColorMid, t*2
	if t >= 0.5 {
		from, to, s = elevColorMid, elevColorHigh, (t-0.5)*2
	}

	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-s) + float64(b)*s)
	}
	return mix(from[0], to[0]), mix(from[1], to[1]), mix(from[2], to[2])
}

// resampleElevation averages elevations into a fixed number of buckets.
// With fewer values than buckets, values are repeated.
func resampleElevation(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(values)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx <= startIdx {
			endIdx = startIdx + 1
		}
		if endIdx > len(values) {
			endIdx = len(values)
		}

		sum := 0.0
		for _, v := range values[startIdx:endIdx] {
			sum += v
		}
		result[i] = sum / float64(endIdx-startIdx)
	}

	return result
}

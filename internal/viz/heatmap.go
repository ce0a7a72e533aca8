// Package viz renders simulation results in the terminal: a color heat
// map of the depth-time concentration field and a live playback view.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/leachsim/internal/leach"
)

// ANSI 256-color ramp, cold to hot.
var ramp = []string{
	"17", "18", "19", "20", "21", "26", "32", "38", "44", "50",
	"49", "48", "47", "46", "82", "118", "154", "190", "226",
	"220", "214", "208", "202", "196",
}

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

// cellStyle returns a style whose background encodes v/max.
func cellStyle(v, max float64) lipgloss.Style {
	t := 0.0
	if max > 0 {
		t = v / max
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	idx := int(t * float64(len(ramp)-1))
	return lipgloss.NewStyle().Background(lipgloss.Color(ramp[idx]))
}

// Heatmap renders the field with depth across and time down, downsampled
// to at most width x height cells. Each cell is two characters wide.
func Heatmap(field []leach.Profile, times []float64, width, height int) string {
	if len(field) == 0 || len(field[0]) == 0 || width < 1 || height < 1 {
		return ""
	}

	max := 0.0
	for _, row := range field {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}

	rows := len(field)
	cols := len(field[0])
	if rows < height {
		height = rows
	}
	if cols < width {
		width = cols
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("concentration (mg/L)"))
	sb.WriteString("\n")
	sb.WriteString(axisStyle.Render("         surface → base"))
	sb.WriteString("\n")

	for r := 0; r < height; r++ {
		n := r * (rows - 1) / maxInt(height-1, 1)
		sb.WriteString(axisStyle.Render(fmt.Sprintf("t=%6.1f ", times[n])))
		for c := 0; c < width; c++ {
			i := c * (cols - 1) / maxInt(width-1, 1)
			sb.WriteString(cellStyle(field[n][i], max).Render("  "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ProfileBar renders a single depth row as one color strip.
func ProfileBar(p leach.Profile, max float64, width int) string {
	if len(p) == 0 || width < 1 {
		return ""
	}
	if len(p) < width {
		width = len(p)
	}
	var sb strings.Builder
	for c := 0; c < width; c++ {
		i := c * (len(p) - 1) / maxInt(width-1, 1)
		sb.WriteString(cellStyle(p[i], max).Render("  "))
	}
	return sb.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

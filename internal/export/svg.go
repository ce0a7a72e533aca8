package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/leachsim/internal/leach"
)

// WriteHeatmapSVG renders the depth-time concentration field as a rect
// grid, depth across, time down, dark-to-warm color ramp.
func WriteHeatmapSVG(w io.Writer, res *leach.Result, cell int) error {
	if len(res.Conc) == 0 || cell < 1 {
		return fmt.Errorf("export: nothing to render")
	}

	rows := len(res.Conc)
	cols := len(res.Conc[0])
	width := cols * cell
	height := rows * cell

	maxC := 0.0
	for _, row := range res.Conc {
		for _, v := range row {
			if v > maxC {
				maxC = v
			}
		}
	}
	if maxC == 0 {
		maxC = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for n, row := range res.Conc {
		for i, v := range row {
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, i*cell, n*cell, cell, cell, rampColor(v/maxC)))
		}
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteGasSVG renders the cumulative biogas curve as a polyline.
func WriteGasSVG(w io.Writer, res *leach.Result, width, height int) error {
	if len(res.Gas) < 2 {
		return fmt.Errorf("export: need at least 2 points")
	}

	maxGas := 0.0
	for _, v := range res.Gas {
		if v > maxGas {
			maxGas = v
		}
	}
	if maxGas == 0 {
		maxGas = 1
	}
	maxT := res.Times[len(res.Times)-1]
	if maxT == 0 {
		maxT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00cc66" stroke-width="1.5" d="M`,
		width, height, width, height))

	for n, v := range res.Gas {
		x := res.Times[n] / maxT * float64(width)
		y := float64(height) - v/maxGas*float64(height)
		if n == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}

// rampColor maps a normalized value to a dark-blue-to-yellow hex color.
func rampColor(t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	r := int(255 * t)
	g := int(60 + 160*t)
	b := int(140 * (1 - t))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/leachsim/internal/leach"
)

func field(rows, cols int, v float64) []leach.Profile {
	f := make([]leach.Profile, rows)
	for n := range f {
		f[n] = make(leach.Profile, cols)
		for i := range f[n] {
			f[n][i] = v
		}
	}
	return f
}

func TestHeatmapDimensions(t *testing.T) {
	f := field(10, 20, 50)
	times := make([]float64, 10)
	for i := range times {
		times[i] = float64(i)
	}

	out := Heatmap(f, times, 8, 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + axis label + 4 data rows
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
}

func TestHeatmapEmpty(t *testing.T) {
	if out := Heatmap(nil, nil, 10, 10); out != "" {
		t.Error("expected empty output for empty field")
	}
	if out := Heatmap(field(2, 2, 1), []float64{0, 1}, 0, 10); out != "" {
		t.Error("expected empty output for zero width")
	}
}

func TestHeatmapDoesNotUpsample(t *testing.T) {
	f := field(3, 4, 1)
	out := Heatmap(f, []float64{0, 1, 2}, 100, 100)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2+3 {
		t.Errorf("expected 3 data rows for a 3-row field, got %d lines", len(lines))
	}
}

func TestProfileBar(t *testing.T) {
	p := leach.Profile{0, 25, 50, 75, 100}
	out := ProfileBar(p, 100, 5)
	if out == "" {
		t.Fatal("expected rendered bar")
	}
	if ProfileBar(nil, 100, 5) != "" {
		t.Error("expected empty bar for empty profile")
	}
}

func TestCellStyleClamps(t *testing.T) {
	// Out-of-range values must land on the ramp ends, not panic.
	_ = cellStyle(-5, 10)
	_ = cellStyle(50, 10)
	_ = cellStyle(5, 0)
}

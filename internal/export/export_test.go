package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/leachsim/internal/leach"
)

func testResult(t *testing.T) *leach.Result {
	t.Helper()
	grid, err := leach.NewGrid(5, 4, 1, 1)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	p := leach.Params{
		Velocity: 0.05, Dispersion: 0.01,
		Rainfall: 10, Infiltration: 0.5,
		LinerThickness: 1, LinerPerm: 1e-9,
		SorptionKd: 1, MuMax: 0.1, Ks: 50, BiogasYield: 0.5,
	}
	drv, err := leach.NewDriver(grid, p)
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	res, err := drv.Run(context.Background(), 100, 50)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestWriteCSV(t *testing.T) {
	res := testResult(t)
	var sb strings.Builder
	if err := WriteCSV(&sb, res); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 5 { // header + 4 rows
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	wantCols := 1 + 5 + 5 + 1
	if len(records[0]) != wantCols {
		t.Errorf("expected %d columns, got %d", wantCols, len(records[0]))
	}
	if records[0][0] != "time" || records[0][wantCols-1] != "gas" {
		t.Errorf("unexpected header %v", records[0])
	}
}

func TestWriteJSON(t *testing.T) {
	res := testResult(t)
	var sb strings.Builder
	if err := WriteJSON(&sb, res); err != nil {
		t.Fatalf("write: %v", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Conc) != 4 || len(doc.Conc[0]) != 5 {
		t.Errorf("expected 4x5 field, got %dx%d", len(doc.Conc), len(doc.Conc[0]))
	}
	if len(doc.Gas) != 4 {
		t.Errorf("expected 4 gas points, got %d", len(doc.Gas))
	}
}

func TestWriteHeatmapSVG(t *testing.T) {
	res := testResult(t)
	var sb strings.Builder
	if err := WriteHeatmapSVG(&sb, res, 4); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, `<?xml`) || !strings.Contains(out, "<svg") {
		t.Error("expected an SVG document")
	}
	if got := strings.Count(out, "<rect"); got != 4*5+1 { // cells + background
		t.Errorf("expected %d rects, got %d", 4*5+1, got)
	}
}

func TestWriteGasSVG(t *testing.T) {
	res := testResult(t)
	var sb strings.Builder
	if err := WriteGasSVG(&sb, res, 320, 120); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(sb.String(), "<path") {
		t.Error("expected a polyline path")
	}
}

func TestRampColorBounds(t *testing.T) {
	if c := rampColor(-1); c != rampColor(0) {
		t.Errorf("expected clamp at 0, got %s", c)
	}
	if c := rampColor(2); c != rampColor(1) {
		t.Errorf("expected clamp at 1, got %s", c)
	}
}

// Package export writes completed simulation results to caller-chosen
// destinations. Nothing here persists state of its own; every writer
// streams to an io.Writer.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/leachsim/internal/leach"
)

// WriteCSV emits one row per time step: time, per-node concentration,
// per-node biomass, cumulative gas.
func WriteCSV(w io.Writer, res *leach.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(res.Conc) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range res.Conc[0] {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	for i := range res.Biomass[0] {
		header = append(header, fmt.Sprintf("b%d", i))
	}
	header = append(header, "gas")
	if err := cw.Write(header); err != nil {
		return err
	}

	for n := range res.Conc {
		row := []string{strconv.FormatFloat(res.Times[n], 'f', 6, 64)}
		for _, v := range res.Conc[n] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range res.Biomass[n] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(res.Gas[n], 'f', 6, 64))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Document is the JSON layout of one exported run.
type Document struct {
	Depths  []float64          `json:"depths"`
	Times   []float64          `json:"times"`
	Conc    []leach.Profile    `json:"concentration"`
	Biomass []leach.Profile    `json:"biomass"`
	Gas     []float64          `json:"gas"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func WriteJSON(w io.Writer, res *leach.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{
		Depths:  res.Depths,
		Times:   res.Times,
		Conc:    res.Conc,
		Biomass: res.Biomass,
		Gas:     res.Gas,
		Metrics: res.Metrics,
	})
}

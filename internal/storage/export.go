package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/sim"
)

// ExportData is the flat JSON shape consumed by external tooling.
type ExportData struct {
	ID             string         `json:"id"`
	Scenario       string         `json:"scenario"`
	Integrator     string         `json:"integrator"`
	Dt             float64        `json:"dt"`
	Duration       float64        `json:"duration"`
	Params         ecology.Params `json:"params"`
	Samples        int            `json:"samples"`
	InvariantDrift float64        `json:"invariant_drift"`
	Times          []float64      `json:"times"`
	Rabbits        []float64      `json:"rabbits"`
	Foxes          []float64      `json:"foxes"`
}

// ExportJSON writes a full run (metadata plus trajectory) to w.
func ExportJSON(w io.Writer, meta *RunMetadata, times []float64, states []sim.State) error {
	data := ExportData{
		ID:             meta.ID,
		Scenario:       meta.Scenario,
		Integrator:     meta.Integrator,
		Dt:             meta.Dt,
		Duration:       meta.Duration,
		Params:         meta.Params,
		Samples:        len(states),
		InvariantDrift: meta.InvariantDrift,
		Times:          times,
		Rabbits:        make([]float64, len(states)),
		Foxes:          make([]float64, len(states)),
	}

	for i, s := range states {
		data.Rabbits[i] = s[0]
		data.Foxes[i] = s[1]
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States:         []sim.State{{10, 4}, {9.75, 4.28}, {9.51, 4.55}},
		Times:          []float64{0, 0.01, 0.02},
		StepsTaken:     2,
		InvariantDrift: 1.2e-8,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	params := ecology.DefaultParams()
	runID, err := st.Save("classic", "rk4", 0.01, 20.0, params, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "classic_") {
		t.Errorf("unexpected run id: %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "classic" || meta.Integrator != "rk4" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Params.Gamma != 3.0 {
		t.Errorf("params not preserved: %+v", meta.Params)
	}
	if meta.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", meta.Samples)
	}

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("trajectory load failed: %v", err)
	}
	if len(times) != 3 || len(states) != 3 {
		t.Fatalf("expected 3 rows, got %d/%d", len(times), len(states))
	}
	if math.Abs(states[1][0]-9.75) > 1e-6 || math.Abs(states[1][1]-4.28) > 1e-6 {
		t.Errorf("trajectory values mangled: %v", states[1])
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list mismatch: %+v", runs)
	}
}

func TestStoreList_Empty(t *testing.T) {
	st := New(t.TempDir() + "/nothere")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:         "classic_1",
		Scenario:   "classic",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   20.0,
		Params:     ecology.DefaultParams(),
	}
	result := sampleResult()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result.Times, result.States); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Samples != 3 || len(data.Rabbits) != 3 || len(data.Foxes) != 3 {
		t.Errorf("export shape wrong: %+v", data)
	}
	if data.Rabbits[1] != 9.75 {
		t.Errorf("rabbit series mangled: %v", data.Rabbits)
	}
}

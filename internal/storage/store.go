package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/sim"
)

// Store persists simulation runs under a base directory, one
// subdirectory per run holding metadata.json and trajectory.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string         `json:"id"`
	Scenario       string         `json:"scenario"`
	Timestamp      time.Time      `json:"timestamp"`
	Dt             float64        `json:"dt"`
	Duration       float64        `json:"duration"`
	Integrator     string         `json:"integrator"`
	Params         ecology.Params `json:"params"`
	Samples        int            `json:"samples"`
	InvariantDrift float64        `json:"invariant_drift"`
}

func (s *Store) Save(scenario, integrator string, dt, duration float64, params ecology.Params, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Scenario:       scenario,
		Timestamp:      time.Now(),
		Dt:             dt,
		Duration:       duration,
		Integrator:     integrator,
		Params:         params,
		Samples:        len(result.States),
		InvariantDrift: result.InvariantDrift,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trajectory.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "rabbits", "foxes"}); err != nil {
		return "", err
	}

	for i := range result.States {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.States[i][0], 'f', 6, 64),
			strconv.FormatFloat(result.States[i][1], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back the sampled (t, rabbits, foxes) sequence.
func (s *Store) LoadTrajectory(runID string) ([]float64, []sim.State, error) {
	csvPath := filepath.Join(s.baseDir, runID, "trajectory.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []sim.State{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]sim.State, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		times = append(times, t)
		states = append(states, sim.State{x, y})
	}

	return times, states, nil
}

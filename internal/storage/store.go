// Package storage persists closed-loop runs as a metadata file plus a CSV
// trace per run, under a flat data directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/steerlab/internal/sim"
)

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
	ID        string             `json:"id"`
	Track     string             `json:"track"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Cycles    int                `json:"cycles"`
	Dt        float64            `json:"dt"`
	Kp        float64            `json:"kp"`
	Kd        float64            `json:"kd"`
	Dropouts  int                `json:"dropouts"`
	Metrics   map[string]float64 `json:"metrics"`
}

var traceHeader = []string{"time", "angle", "error", "slope", "offset"}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Track, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Dropouts = result.Dropouts
	meta.Metrics = result.Metrics

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

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(traceHeader); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Angles[i], 'f', 6, 64),
			strconv.FormatFloat(result.Errors[i], 'f', 6, 64),
			strconv.FormatFloat(result.Slopes[i], 'f', 6, 64),
			strconv.FormatFloat(result.Offsets[i], 'f', 6, 64),
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadTrace reads a run's trace back into a Result. Metrics and dropouts
// come from the metadata file.
func (s *Store) LoadTrace(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &sim.Result{
		Dropouts: meta.Dropouts,
		Metrics:  meta.Metrics,
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(traceHeader) {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		result.Times = append(result.Times, vals[0])
		result.Angles = append(result.Angles, vals[1])
		result.Errors = append(result.Errors, vals[2])
		result.Slopes = append(result.Slopes, vals[3])
		result.Offsets = append(result.Offsets, vals[4])
	}

	return result, nil
}

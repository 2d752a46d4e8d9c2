// Package storage persists completed simulation runs for later
// re-analysis and export. The core packages never depend on it; it is
// the export collaborator sitting outside the simulation boundary.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/echem-lab/echemsim/internal/series"
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

// RunMetadata describes one persisted run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Technique  string             `json:"technique"`
	Category   string             `json:"category"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	TotalTime  float64            `json:"total_time"`
	NoiseLevel float64            `json:"noise_level"`
	Points     int                `json:"points"`
	Parameters map[string]float64 `json:"parameters"`
}

// Save writes metadata.json and points.csv for a run and returns the
// generated run id.
func (s *Store) Save(meta RunMetadata, pts []series.Point) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Technique, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Points = len(pts)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "freq", "phase", "time"}); err != nil {
		return "", err
	}
	for _, p := range pts {
		row := []string{
			formatFloat(p.X),
			formatFloat(p.Y),
			formatFloat(p.Z),
			formatFloat(p.Phase),
			formatFloat(p.Time),
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPoints reads the measurement series of a stored run.
func (s *Store) LoadPoints(runID string) ([]series.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []series.Point{}, nil
	}

	pts := make([]series.Point, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 5 {
			return nil, fmt.Errorf("run %s: malformed csv row with %d fields", runID, len(rec))
		}
		var vals [5]float64
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
			vals[i] = v
		}
		pts = append(pts, series.Point{X: vals[0], Y: vals[1], Z: vals[2], Phase: vals[3], Time: vals[4]})
	}
	return pts, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

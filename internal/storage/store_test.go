package storage

import (
	"testing"

	"github.com/echem-lab/echemsim/internal/series"
)

func samplePoints() []series.Point {
	return []series.Point{
		{X: -0.5, Y: 1.25, Time: 0.1},
		{X: -0.4, Y: 2.5, Time: 0.2},
		{X: -0.3, Y: 3.75, Z: 100, Phase: -45, Time: 0.3},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	id, err := store.Save(RunMetadata{
		Technique:  "cv",
		Category:   "voltammetry",
		Seed:       42,
		TotalTime:  40,
		NoiseLevel: 0.02,
		Parameters: map[string]float64{"scanRate": 0.05},
	}, samplePoints())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if meta.Technique != "cv" || meta.Points != 3 || meta.Seed != 42 {
		t.Errorf("metadata mangled: %+v", meta)
	}
	if meta.Parameters["scanRate"] != 0.05 {
		t.Errorf("parameters lost: %+v", meta.Parameters)
	}

	pts, err := store.LoadPoints(id)
	if err != nil {
		t.Fatalf("load points: %v", err)
	}
	want := samplePoints()
	if len(pts) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(pts))
	}
	for i := range pts {
		if pts[i] != want[i] {
			t.Errorf("point %d: got %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestListRuns(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(RunMetadata{Technique: "ca"}, samplePoints()); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Technique != "ca" {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestListEmptyDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list on missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadPointsUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.LoadPoints("missing_123"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

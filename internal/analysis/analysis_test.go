package analysis

import (
	"testing"

	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/technique"
)

func TestAnalyzeEmptySeries(t *testing.T) {
	d, err := technique.NewRegistry().Get("cv")
	if err != nil {
		t.Fatal(err)
	}

	res, err := Analyze(d, nil, nil)
	if err != nil {
		t.Fatalf("empty series must not error: %v", err)
	}
	if res.Voltammetry != nil || res.Impedance != nil || res.Chrono != nil {
		t.Errorf("expected neutral result, got %+v", res)
	}
	if res.Points != 0 || res.Technique != "cv" {
		t.Errorf("unexpected envelope: %+v", res)
	}
}

func TestAnalyzeSinglePoint(t *testing.T) {
	d, _ := technique.NewRegistry().Get("ca")

	res, err := Analyze(d, []series.Point{{X: 1, Y: 5, Time: 1}}, nil)
	if err != nil {
		t.Fatalf("single point must not error: %v", err)
	}
	if res.Chrono != nil {
		t.Error("expected neutral result for a single point")
	}
}

func TestAnalyzeUnknownCategory(t *testing.T) {
	d := technique.Descriptor{ID: "mystery", Category: "spectroscopy"}
	pts := []series.Point{{X: 0, Y: 1}, {X: 1, Y: 2}}

	if _, err := Analyze(d, pts, nil); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAnalyzeVoltammetryBranch(t *testing.T) {
	d, _ := technique.NewRegistry().Get("dpv")
	pts := gaussianSeries(100, []int{30, 70}, []float64{100, 60}, 4)

	res, err := Analyze(d, pts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Voltammetry == nil {
		t.Fatal("expected voltammetry branch")
	}
	v := res.Voltammetry
	if len(v.PeakCurrents) != 2 || !v.HasSeparation {
		t.Fatalf("unexpected peak summary: %+v", v)
	}
	if v.PeakSeparation != 40 {
		t.Errorf("separation = %g, want 40 (index units of the synthetic series)", v.PeakSeparation)
	}
	if v.Reversible {
		t.Error("a 40 V separation is far beyond the reversibility threshold")
	}
}

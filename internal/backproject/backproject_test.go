package backproject

import (
	"math"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

func buildParallelProjections(t *testing.T) *projections.Projections {
	t.Helper()
	p := phantom.NewSheppLogan()
	s, err := scanner.New(p, "parallel", 128, 64, 0, 1, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	return projections.Collect(s, p)
}

func TestNewRejectsUnknownNames(t *testing.T) {
	pr := buildParallelProjections(t)
	if _, err := New(pr, "bogus", "linear", 1); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, err := New(pr, "trig", "bogus", 1); err == nil {
		t.Fatal("expected error for unknown interpolation")
	}
}

func TestBackprojectViewAccumulatesCenterRay(t *testing.T) {
	pr := buildParallelProjections(t)
	bp, err := New(pr, "trig", "linear", 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// An odd pixel count puts a column of pixel centers exactly on x=0.
	grid, err := NewGrid(33, 33, -1, 1, -1, 1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	view := make([]float64, pr.NDet)
	view[pr.NDet/2] = 1
	if err := bp.BackprojectView(grid, view, 0); err != nil {
		t.Fatalf("BackprojectView: %v", err)
	}
	var total float64
	for _, v := range grid.Data {
		total += math.Abs(v)
	}
	if total == 0 {
		t.Fatal("expected nonzero accumulation from a nonzero detector row")
	}
	// At angle 0, t = x, so the center detector's ray is the vertical
	// strip near x=0; a pixel at the far edge in x should get no weight.
	farPixel := grid.Data[grid.at(0, grid.NY/2)]
	if farPixel != 0 {
		t.Fatalf("far pixel got nonzero contribution %v from a center-ray delta view", farPixel)
	}
}

func TestBackprojectViewRejectsEmptyRow(t *testing.T) {
	pr := buildParallelProjections(t)
	bp, err := New(pr, "trig", "linear", 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	grid, _ := NewGrid(8, 8, -1, 1, -1, 1)
	if err := bp.BackprojectView(grid, nil, 0); err == nil {
		t.Fatal("expected error for empty detector row")
	}
}

func TestPostProcessingRejectsSecondCall(t *testing.T) {
	pr := buildParallelProjections(t)
	bp, err := New(pr, "trig", "linear", 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	grid, _ := NewGrid(8, 8, -1, 1, -1, 1)
	if err := bp.PostProcessing(grid); err != nil {
		t.Fatalf("first PostProcessing: %v", err)
	}
	if err := bp.PostProcessing(grid); err == nil {
		t.Fatal("expected error on second PostProcessing call")
	}
}

func TestSampleLinearInterpolation(t *testing.T) {
	bp := &Backprojector{Interp: Linear, DetInc: 1.0, DetStart: 0}
	view := []float64{0, 10, 20, 30}
	got, ok := bp.sample(view, 1.5)
	if !ok {
		t.Fatal("expected sample to be in range")
	}
	if math.Abs(got-15) > 1e-9 {
		t.Fatalf("linear sample at 1.5 = %v, want 15", got)
	}
}

func TestSampleOutOfRange(t *testing.T) {
	bp := &Backprojector{Interp: Linear, DetInc: 1.0, DetStart: 0}
	view := []float64{0, 10, 20, 30}
	if _, ok := bp.sample(view, -5); ok {
		t.Fatal("expected out-of-range sample to report ok=false")
	}
}

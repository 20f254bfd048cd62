package scanner

import (
	"math"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
)

func TestUnitPulseOverridesView(t *testing.T) {
	p := phantom.NewUnitPulse()
	s, err := New(p, "parallel", 257, 10, 0, 1, math.Pi, 2.0, 2.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for v := 0; v < s.NView; v++ {
		row := s.ProjectView(p, v)
		for d, val := range row {
			if d == s.NDet/2 {
				if val != 1 {
					t.Fatalf("view %d center detector = %v, want 1", v, val)
				}
			} else if val != 0 {
				t.Fatalf("view %d detector %d = %v, want 0", v, d, val)
			}
		}
	}
}

func TestEquilinearRejectsImpossibleGeometry(t *testing.T) {
	p := phantom.NewSheppLogan()
	_, err := New(p, "equilinear", 100, 100, 0, 1, math.Pi, 0.1, 1.0, 1.0, 10.0)
	if err == nil {
		t.Fatal("expected InvalidGeometry error for scanDiameter/2 >= focalLength")
	}
}

func TestParallelDetectorSpacingEvenOdd(t *testing.T) {
	p := phantom.NewSheppLogan()
	sEven, err := New(p, "parallel", 256, 180, 0, 1, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("New even: %v", err)
	}
	if sEven.DetInc <= 0 {
		t.Fatalf("even detInc = %v, want > 0", sEven.DetInc)
	}
	sOdd, err := New(p, "parallel", 257, 180, 0, 1, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("New odd: %v", err)
	}
	if sOdd.DetInc <= 0 {
		t.Fatalf("odd detInc = %v, want > 0", sOdd.DetInc)
	}
}

func TestShepLoganParallelPeakNearCenter(t *testing.T) {
	p := phantom.NewSheppLogan()
	s, err := New(p, "parallel", 367, 320, 0, 2, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	row := s.ProjectView(p, 0)
	maxIdx, maxVal := 0, row[0]
	for i, v := range row {
		if v > maxVal {
			maxVal, maxIdx = v, i
		}
	}
	center := s.NDet / 2
	if maxIdx < center-5 || maxIdx > center+5 {
		t.Fatalf("peak at detector %d, want near center %d", maxIdx, center)
	}
}

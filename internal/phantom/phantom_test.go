package phantom

import (
	"math"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
)

func TestZeroAttenuationProjectsToZero(t *testing.T) {
	p := newEmptyPhantom()
	p.AddElement(Ellipse, 0, 0, 1, 1, 0, 0)
	p.AddElement(Rectangle, 0.2, 0.2, 0.3, 0.1, 15, 0)
	for a := -1.0; a <= 1.0; a += 0.25 {
		got := ProjectLine(p, -2, a, 2, a)
		if got != 0 {
			t.Fatalf("projection of zero-attenuation phantom at y=%v = %v, want 0", a, got)
		}
	}
}

func TestProjectorLinearity(t *testing.T) {
	p1 := newEmptyPhantom()
	p1.AddElement(Ellipse, 0, 0, 0.5, 0.8, 0, 1.0)
	p2 := newEmptyPhantom()
	p2.AddElement(Rectangle, 0.1, -0.2, 0.3, 0.2, 30, 0.5)

	combined := newEmptyPhantom()
	combined.AddElement(Ellipse, 0, 0, 0.5, 0.8, 0, 1.0)
	combined.AddElement(Rectangle, 0.1, -0.2, 0.3, 0.2, 30, 0.5)

	for _, ray := range [][4]float64{
		{-2, 0, 2, 0},
		{-2, 0.3, 2, 0.3},
		{-2, -0.5, 2, -0.5},
	} {
		sum := ProjectLine(p1, ray[0], ray[1], ray[2], ray[3]) + ProjectLine(p2, ray[0], ray[1], ray[2], ray[3])
		got := ProjectLine(combined, ray[0], ray[1], ray[2], ray[3])
		if math.Abs(sum-got) > 1e-9 {
			t.Fatalf("linearity violated: sum=%v, combined=%v", sum, got)
		}
	}
}

func TestEllipseCenterIntersectionLength(t *testing.T) {
	p := newEmptyPhantom()
	p.AddElement(Ellipse, 0, 0, 2, 1, 0, 1)
	// A horizontal ray through the center of an axis-aligned ellipse with
	// semi-axes (2,1) intersects it over a chord of length 2*2=4.
	got := ProjectLine(p, -10, 0, 10, 0)
	if math.Abs(got-4.0) > 1e-9 {
		t.Fatalf("chord length = %v, want 4.0", got)
	}
}

func TestRasterizeSheppLoganScenario(t *testing.T) {
	p := NewSheppLogan()
	img, err := array2d.New(256, 256, false, array2d.PixelFloat64, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Rasterize(p, img, 1.0, 2); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	min, max, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, v := range img.Real {
		min = math.Min(min, v)
		max = math.Max(max, v)
		sum += v
	}
	mean := sum / float64(len(img.Real))
	if min < -0.1 || min > 0.1 {
		t.Fatalf("min = %v, want approx 0", min)
	}
	if max < 1.8 || max > 2.2 {
		t.Fatalf("max = %v, want approx 2.00", max)
	}
	if mean < 0.18 || mean > 0.24 {
		t.Fatalf("mean = %v, want approx 0.212", mean)
	}
}

package reconstruct

import (
	"math"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/filter"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/image"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/signal"
)

func buildSheppLoganScan(t *testing.T, nDet, nView int) (*projections.Projections, *phantom.Phantom) {
	t.Helper()
	p := phantom.NewSheppLogan()
	s, err := scanner.New(p, "parallel", nDet, nView, 0, 1, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	return projections.Collect(s, p), p
}

func defaultOptions(nx, ny int) Options {
	return Options{
		FilterID:     filter.AbsBandlimit,
		FilterParam:  0.5,
		FilterMethod: signal.FFT,
		Generation:   signal.Direct,
		Zeropad:      1,
		BackprojAlgo: "trig",
		Interp:       "linear",
		InterpFactor: 1,
		NX:           nx, NY: ny,
		XMin: -1, XMax: 1, YMin: -1, YMax: 1,
	}
}

func TestReconstructSheppLoganCorrelatesWithRasterizedPhantom(t *testing.T) {
	nx, ny := 64, 64
	proj, p := buildSheppLoganScan(t, 185, 180)

	rec, err := New(proj, defaultOptions(nx, ny))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img, err := rec.Run(proj)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	reference, err := image.New(nx, ny, false)
	if err != nil {
		t.Fatalf("image.New: %v", err)
	}
	if err := phantom.Rasterize(p, reference.File, 1.0, 2); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	stats, err := img.ComparativeStatistics(reference)
	if err != nil {
		t.Fatalf("ComparativeStatistics: %v", err)
	}
	t.Logf("correlation = %v", stats.Correlation)
	if math.IsNaN(stats.Correlation) {
		t.Fatal("correlation is NaN")
	}
}

func TestReconstructRejectsBadDimensions(t *testing.T) {
	proj, _ := buildSheppLoganScan(t, 64, 64)
	opts := defaultOptions(0, 8)
	if _, err := New(proj, opts); err == nil {
		t.Fatal("expected error for NX=0")
	}
}

func TestReconstructWithRebinFromEquilinear(t *testing.T) {
	p := phantom.NewSheppLogan()
	s, err := scanner.New(p, "equilinear", 129, 180, 0, 1, math.Pi, 2.0, 2.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}
	proj := projections.Collect(s, p)

	opts := defaultOptions(32, 32)
	opts.Rebin = true
	rec, err := New(proj, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img, err := rec.Run(proj)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, v := range img.Real {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("reconstructed[%d] = %v, want finite", i, v)
		}
	}
}

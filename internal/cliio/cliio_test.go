package cliio

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

func TestImageWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.if")

	f, err := array2d.New(4, 4, false, array2d.PixelFloat64, 8)
	if err != nil {
		t.Fatalf("array2d.New: %v", err)
	}
	f.Real[5] = 3.5

	if err := WriteImage(path, f, "test remark", 1.25); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.NX() != 4 || got.NY() != 4 {
		t.Fatalf("dims = %dx%d, want 4x4", got.NX(), got.NY())
	}
	if got.Real[5] != 3.5 {
		t.Fatalf("Real[5] = %v, want 3.5", got.Real[5])
	}
	if len(got.Labels) != 1 || got.Labels[0].Text != "test remark" {
		t.Fatalf("labels = %+v, want one label 'test remark'", got.Labels)
	}
}

func TestProjectionsWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pj")

	p := phantom.NewSheppLogan()
	s, err := scanner.New(p, "parallel", 32, 16, 0, 1, math.Pi, 1, 1, 1, 1)
	if err != nil {
		t.Fatalf("scanner.New: %v", err)
	}

	pr := projections.Collect(s, p)
	if err := WriteProjections(path, pr, "phm2pj test", 0.5); err != nil {
		t.Fatalf("WriteProjections: %v", err)
	}
	got, err := ReadProjections(path)
	if err != nil {
		t.Fatalf("ReadProjections: %v", err)
	}
	if got.NDet != pr.NDet || got.NView != pr.NView {
		t.Fatalf("dims = %dx%d, want %dx%d", got.NDet, got.NView, pr.NDet, pr.NView)
	}
	if got.Remark != "phm2pj test" {
		t.Fatalf("remark = %q, want 'phm2pj test'", got.Remark)
	}
}

func TestLoadPhantomKnownName(t *testing.T) {
	p, err := LoadPhantom("shepplogan")
	if err != nil {
		t.Fatalf("LoadPhantom: %v", err)
	}
	if len(p.Elements) == 0 {
		t.Fatal("expected shepplogan to have elements")
	}
}

func TestLoadPhantomMissingFile(t *testing.T) {
	if _, err := LoadPhantom("/nonexistent/path/to/a/phantom.def"); err == nil {
		t.Fatal("expected error for nonexistent phantom file")
	}
}

package image

import (
	"math"
	"testing"
)

func fillRamp(im *ImageFile) {
	n := 0
	for i := range im.Real {
		im.Real[i] = float64(n)
		n++
	}
}

func TestArithmeticOps(t *testing.T) {
	a, _ := New(4, 4, false)
	b, _ := New(4, 4, false)
	fillRamp(a)
	for i := range b.Real {
		b.Real[i] = 1
	}

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	for i := range sum.Real {
		if sum.Real[i] != a.Real[i]+1 {
			t.Fatalf("sum[%d] = %v, want %v", i, sum.Real[i], a.Real[i]+1)
		}
	}

	diff, err := sum.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	for i := range diff.Real {
		if math.Abs(diff.Real[i]-a.Real[i]) > 1e-9 {
			t.Fatalf("diff[%d] = %v, want %v", i, diff.Real[i], a.Real[i])
		}
	}
}

func TestMismatchedDimsRejected(t *testing.T) {
	a, _ := New(4, 4, false)
	b, _ := New(2, 2, false)
	if _, err := a.Add(b); err == nil {
		t.Fatal("expected error for mismatched dims")
	}
}

func TestStatistics(t *testing.T) {
	a, _ := New(1, 5, false)
	copy(a.Real, []float64{1, 2, 3, 4, 5})
	if got := a.Min(); got != 1 {
		t.Fatalf("Min = %v, want 1", got)
	}
	if got := a.Max(); got != 5 {
		t.Fatalf("Max = %v, want 5", got)
	}
	if got := a.Mean(); math.Abs(got-3) > 1e-9 {
		t.Fatalf("Mean = %v, want 3", got)
	}
	if got := a.Median(); got != 3 {
		t.Fatalf("Median = %v, want 3", got)
	}
}

func TestComparativeStatisticsSelfCorrelation(t *testing.T) {
	a, _ := New(8, 8, false)
	fillRamp(a)
	stats, err := a.ComparativeStatistics(a)
	if err != nil {
		t.Fatalf("ComparativeStatistics: %v", err)
	}
	if math.Abs(stats.Correlation-1.0) > 1e-9 {
		t.Fatalf("self-correlation = %v, want 1.0", stats.Correlation)
	}
	if stats.RMSE != 0 {
		t.Fatalf("self-RMSE = %v, want 0", stats.RMSE)
	}
}

func TestFFTRowsRoundTrip(t *testing.T) {
	im, _ := New(8, 8, false)
	fillRamp(im)
	original := append([]float64(nil), im.Real...)
	im.FFTRows(false)
	im.FFTRows(true)
	for i := range im.Real {
		if math.Abs(im.Real[i]-original[i]) > 1e-9 {
			t.Fatalf("FFTRows round trip[%d] = %v, want %v", i, im.Real[i], original[i])
		}
	}
}

func TestScaleImagePreservesRange(t *testing.T) {
	im, _ := New(4, 4, false)
	fillRamp(im)
	out, err := im.ScaleImage(8, 8)
	if err != nil {
		t.Fatalf("ScaleImage: %v", err)
	}
	if out.NX() != 8 || out.NY() != 8 {
		t.Fatalf("scaled dims = %dx%d, want 8x8", out.NX(), out.NY())
	}
	lo, hi := im.Min(), im.Max()
	for i, v := range out.Real {
		if v < lo-1e-6 || v > hi+1e-6 {
			t.Fatalf("scaled[%d] = %v, out of source range [%v,%v]", i, v, lo, hi)
		}
	}
}

func TestRealAndImagPart(t *testing.T) {
	im, _ := New(1, 3, true)
	copy(im.Real, []float64{1, 2, 3})
	copy(im.Imag, []float64{4, 5, 6})
	re := im.RealPart()
	for i, v := range re.Real {
		if v != im.Real[i] {
			t.Fatalf("RealPart[%d] = %v, want %v", i, v, im.Real[i])
		}
	}
	imag := im.ImagPart()
	for i, v := range imag.Real {
		if v != im.Imag[i] {
			t.Fatalf("ImagPart[%d] = %v, want %v", i, v, im.Imag[i])
		}
	}
}

func TestImagPartZeroWithoutImaginaryPlane(t *testing.T) {
	im, _ := New(1, 3, false)
	copy(im.Real, []float64{1, 2, 3})
	imag := im.ImagPart()
	for i, v := range imag.Real {
		if v != 0 {
			t.Fatalf("ImagPart[%d] = %v, want 0", i, v)
		}
	}
}

func TestFFT2DRoundTrip(t *testing.T) {
	im, _ := New(4, 4, false)
	fillRamp(im)
	original := append([]float64(nil), im.Real...)
	im.FFT2D()
	im.IFFT2D()
	for i := range im.Real {
		if math.Abs(im.Real[i]-original[i]) > 1e-9 {
			t.Fatalf("FFT2D round trip[%d] = %v, want %v", i, im.Real[i], original[i])
		}
	}
}

func TestSqrtClampsNegative(t *testing.T) {
	im, _ := New(1, 3, false)
	copy(im.Real, []float64{-4, 0, 4})
	out := im.Sqrt()
	if out.Real[0] != 0 || out.Real[1] != 0 || out.Real[2] != 2 {
		t.Fatalf("Sqrt results = %v, want [0 0 2]", out.Real)
	}
}

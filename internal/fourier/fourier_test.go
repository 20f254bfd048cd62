package fourier

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTRoundTrip64(t *testing.T) {
	const n = 64
	v := make([]complex128, n)
	for i := range v {
		v[i] = complex(math.Sin(float64(i)*0.3)+0.5*math.Cos(float64(i)*1.7), 0)
	}
	got := IFFT(FFT(v))
	for i := range v {
		if cmplx.Abs(got[i]-v[i]) > 1e-10 {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, got[i], v[i])
		}
	}
}

func TestShuffleInvolutionEvenOdd(t *testing.T) {
	for _, n := range []int{8, 9, 16, 17, 1} {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(i) * 1.5
		}
		shuffled := ShuffleNaturalToFourier(in)
		back := ShuffleFourierToNatural(shuffled)
		for i := range in {
			if back[i] != in[i] {
				t.Fatalf("n=%d: involution failed at %d: got %v, want %v", n, i, back[i], in[i])
			}
		}
	}
}

func TestAddZeropadFactor(t *testing.T) {
	if got := AddZeropadFactor(367, 0); got != 512 {
		t.Fatalf("AddZeropadFactor(367,0) = %d, want 512", got)
	}
	if got := AddZeropadFactor(367, 1); got != 1024 {
		t.Fatalf("AddZeropadFactor(367,1) = %d, want 1024", got)
	}
	if got := AddZeropadFactor(256, 0); got != 256 {
		t.Fatalf("AddZeropadFactor(256,0) = %d, want 256", got)
	}
}

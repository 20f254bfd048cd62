package filter

import (
	"math"
	"testing"
)

var allIDs = []ID{
	AbsBandlimit, AbsGHamming, AbsHanning, AbsCosine, AbsSinc,
	Shepp, Bandlimit, Sinc, GHamming, Hanning, Cosine, Triangle,
}

func TestFrequencyResponseIsEven(t *testing.T) {
	const bw = 1.0
	const param = 0.54
	for _, id := range allIDs {
		for _, u := range []float64{0.01, 0.1, 0.2, 0.3, 0.49} {
			pos := FrequencyResponse(id, bw, u, param)
			neg := FrequencyResponse(id, bw, -u, param)
			if math.Abs(pos-neg) > 1e-12 {
				t.Fatalf("%s: H(%v)=%v, H(%v)=%v, not symmetric", id, u, pos, -u, neg)
			}
		}
	}
}

func TestFrequencyResponseZeroOutsideBand(t *testing.T) {
	const bw = 0.5
	for _, id := range allIDs {
		if id == Sinc {
			continue
		}
		got := FrequencyResponse(id, bw, bw, 0.5)
		if got != 0 {
			t.Fatalf("%s: H(bw)=%v, want 0 outside passband", id, got)
		}
	}
}

func TestSpatialResponseIsEven(t *testing.T) {
	const bw = 1.0
	const param = 0.54
	for _, id := range allIDs {
		for _, x := range []float64{0.1, 0.5, 1.3, 2.0} {
			pos := SpatialResponse(id, bw, x, param, Options{})
			neg := SpatialResponse(id, bw, -x, param, Options{})
			if math.Abs(pos-neg) > 1e-6 {
				t.Fatalf("%s: h(%v)=%v, h(%v)=%v, not symmetric", id, x, pos, -x, neg)
			}
		}
	}
}

func TestBandlimitSpatialPeakAtOrigin(t *testing.T) {
	got := SpatialResponseAnalytic(Bandlimit, 1.0, 0, 0)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("bandlimit h(0) = %v, want bw=1.0", got)
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	for _, id := range allIDs {
		got, err := ParseID(id.String())
		if err != nil {
			t.Fatalf("ParseID(%s): %v", id, err)
		}
		if got != id {
			t.Fatalf("ParseID(%s) = %v, want %v", id, got, id)
		}
	}
	if _, err := ParseID("not-a-filter"); err == nil {
		t.Fatal("expected error for unknown filter name")
	}
}

func TestNewRejectsDegenerateInputs(t *testing.T) {
	if _, err := New(Bandlimit, Frequency, 1.0, 1, -0.5, 0.5, 0, Options{}); err == nil {
		t.Fatal("expected error for nPoints < 2")
	}
	if _, err := New(Bandlimit, Frequency, 0, 10, -0.5, 0.5, 0, Options{}); err == nil {
		t.Fatal("expected error for bandwidth <= 0")
	}
}

func TestNewSamplesMatchDirectEvaluation(t *testing.T) {
	sf, err := New(AbsBandlimit, Frequency, 1.0, 11, -0.5, 0.5, 0, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, got := range sf.Samples {
		x := sf.Min + float64(i)*sf.Inc
		want := FrequencyResponse(AbsBandlimit, 1.0, x, 0)
		if got != want {
			t.Fatalf("sample %d = %v, want %v", i, got, want)
		}
	}
}

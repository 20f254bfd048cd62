package signal

import (
	"math"
	"testing"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/filter"
)

func TestZeroInputStaysZero(t *testing.T) {
	view := make([]float64, 16)
	for _, m := range []Method{Convolution, Fourier, FourierTable, FFT} {
		ps, err := New(m, Direct, filter.AbsBandlimit, 1.0, 0, 1.0, 1, 1, filter.Options{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		out, err := ps.FilterView(view)
		if err != nil {
			t.Fatalf("FilterView: %v", err)
		}
		for i, v := range out {
			if math.Abs(v) > 1e-9 {
				t.Fatalf("method %d: out[%d] = %v, want 0", m, i, v)
			}
		}
	}
}

func TestFilterViewOutputLengthMatchesInput(t *testing.T) {
	view := make([]float64, 32)
	view[16] = 1
	for _, m := range []Method{Convolution, Fourier, FourierTable, FFT} {
		ps, err := New(m, Direct, filter.Bandlimit, 1.0, 0, 1.0, 1, 1, filter.Options{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		out, err := ps.FilterView(view)
		if err != nil {
			t.Fatalf("FilterView: %v", err)
		}
		if len(out) != len(view) {
			t.Fatalf("method %d: out len = %d, want %d", m, len(out), len(view))
		}
	}
}

func TestFourierTableCachesAcrossCalls(t *testing.T) {
	ps, err := New(FourierTable, Direct, filter.Bandlimit, 1.0, 0, 1.0, 1, 1, filter.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	view := make([]float64, 16)
	view[8] = 1
	if _, err := ps.FilterView(view); err != nil {
		t.Fatalf("FilterView: %v", err)
	}
	if ps.table == nil {
		t.Fatal("expected cached table after first call")
	}
	cached := ps.table
	if _, err := ps.FilterView(view); err != nil {
		t.Fatalf("FilterView: %v", err)
	}
	if &ps.table[0] != &cached[0] {
		t.Fatal("expected table to be reused, not recomputed, on second call")
	}
}

func TestRejectsNonPositiveBandwidth(t *testing.T) {
	if _, err := New(FFT, Direct, filter.Bandlimit, 0, 0, 1.0, 1, 1, filter.Options{}); err == nil {
		t.Fatal("expected error for bandwidth <= 0")
	}
}

func TestEmptyViewRejected(t *testing.T) {
	ps, err := New(FFT, Direct, filter.Bandlimit, 1.0, 0, 1.0, 1, 1, filter.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := ps.FilterView(nil); err == nil {
		t.Fatal("expected error for empty view")
	}
}

func TestPreinterpolationDoublesLength(t *testing.T) {
	ps, err := New(FFT, Direct, filter.Bandlimit, 1.0, 0, 1.0, 1, 1, filter.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ps.PreinterpolationFactor = 2
	view := make([]float64, 16)
	view[8] = 1
	out, err := ps.FilterView(view)
	if err != nil {
		t.Fatalf("FilterView: %v", err)
	}
	if len(out) != 32 {
		t.Fatalf("out len = %d, want 32", len(out))
	}
}

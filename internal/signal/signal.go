// Package signal implements per-view ramp filtering: ProcessSignal wires
// package filter's responses into a convolution or Fourier-domain pipeline
// over a single detector row.
package signal

import (
	"math"
	"math/cmplx"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/filter"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/fourier"
)

// Method selects the filtering algorithm.
type Method int

const (
	// Convolution filters by direct time-domain convolution with the
	// filter's spatial response.
	Convolution Method = iota
	// Fourier filters by multiplying the spectrum of a naive (O(n^2)) DFT
	// by the frequency response, then inverting.
	Fourier
	// FourierTable is Fourier, but the frequency-response samples are
	// computed once at construction and reused across calls.
	FourierTable
	// FFT filters via the radix-2 fast Fourier transform.
	FFT
)

func (m Method) String() string {
	switch m {
	case Convolution:
		return "convolution"
	case Fourier:
		return "fourier"
	case FourierTable:
		return "fourier-table"
	case FFT:
		return "fft"
	default:
		return "invalid"
	}
}

// ParseMethod matches a filtering method name case-insensitively.
func ParseMethod(name string) (Method, error) {
	switch lowerASCII(name) {
	case "convolution":
		return Convolution, nil
	case "fourier":
		return Fourier, nil
	case "fourier-table", "fouriertable":
		return FourierTable, nil
	case "fft":
		return FFT, nil
	default:
		return 0, ctserr.Invalid("unknown filtering method %q", name)
	}
}

// Generation selects how the frequency-domain response is produced.
type Generation int

const (
	// Direct evaluates filter.FrequencyResponse at each sample frequency.
	Direct Generation = iota
	// InverseFourier generates the frequency response by transforming a
	// spatial-domain kernel built from filter.SpatialResponse.
	InverseFourier
)

func (g Generation) String() string {
	switch g {
	case Direct:
		return "direct"
	case InverseFourier:
		return "inverse-fourier"
	default:
		return "invalid"
	}
}

// ParseGeneration matches a generation name case-insensitively.
func ParseGeneration(name string) (Generation, error) {
	switch lowerASCII(name) {
	case "direct":
		return Direct, nil
	case "inverse-fourier", "inversefourier":
		return InverseFourier, nil
	default:
		return 0, ctserr.Invalid("unknown response generation %q", name)
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ProcessSignal holds the filter configuration shared by every view in a
// reconstruction run.
type ProcessSignal struct {
	Method        Method
	Generation    Generation
	FilterID      filter.ID
	Bandwidth     float64
	Param         float64
	Options       filter.Options
	ZeropadFactor int
	// DetInc is the spacing between consecutive detector samples, the
	// discretization step in the convolution's Riemann-sum approximation.
	DetInc float64
	// PreinterpolationFactor, when > 1, multiplies the output length by
	// this factor by zero-stuffing the spectrum before inverse-transforming
	// (SPEC_FULL.md 4.3+). Convolution ignores it.
	PreinterpolationFactor int

	tablePadded int
	table       []float64
}

// New constructs a ProcessSignal. For FourierTable, the frequency-response
// table is built lazily on first call at the padded length then cached.
// preinterpFactor, when > 1, zero-stuffs the spectrum before inverting to
// oversample the filtered row (SPEC_FULL.md 4.3+); callers that do not
// preinterpolate pass 1.
func New(method Method, generation Generation, id filter.ID, bw, param, detInc float64, zeropadFactor, preinterpFactor int, opts filter.Options) (*ProcessSignal, error) {
	if bw <= 0 {
		return nil, ctserr.Invalid("process signal bandwidth must be > 0, got %v", bw)
	}
	if detInc <= 0 {
		return nil, ctserr.Invalid("process signal detInc must be > 0, got %v", detInc)
	}
	if zeropadFactor < 0 {
		return nil, ctserr.Invalid("zeropad factor must be >= 0, got %d", zeropadFactor)
	}
	if preinterpFactor < 1 {
		return nil, ctserr.Invalid("preinterpolation factor must be >= 1, got %d", preinterpFactor)
	}
	return &ProcessSignal{
		Method: method, Generation: generation, FilterID: id,
		Bandwidth: bw, Param: param, Options: opts, ZeropadFactor: zeropadFactor,
		DetInc: detInc, PreinterpolationFactor: preinterpFactor,
	}, nil
}

// FilterView filters one detector row and returns a new slice: len(view)
// long for Convolution, len(view)*PreinterpolationFactor for the spectral
// methods.
func (p *ProcessSignal) FilterView(view []float64) ([]float64, error) {
	n := len(view)
	if n == 0 {
		return nil, ctserr.Invalid("filter view: empty input")
	}
	switch p.Method {
	case Convolution:
		return p.filterConvolution(view), nil
	case Fourier, FourierTable, FFT:
		return p.filterSpectral(view), nil
	default:
		return nil, ctserr.Invalid("unknown filter method %d", p.Method)
	}
}

// filterConvolution applies output[i] = detInc * sum_j view[j]*kernel[i-j],
// the discrete Riemann-sum approximation of the continuous convolution
// integral; detInc is the spacing between consecutive detector samples.
func (p *ProcessSignal) filterConvolution(view []float64) []float64 {
	n := len(view)
	half := n - 1
	kernel := make([]float64, 2*half+1)
	for i := -half; i <= half; i++ {
		kernel[i+half] = filter.SpatialResponse(p.FilterID, p.Bandwidth, float64(i), p.Param, p.Options)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += view[j] * kernel[i-j+half]
		}
		out[i] = sum * p.DetInc
	}
	return out
}

// freqResponseTable samples the (possibly InverseFourier-generated)
// frequency response at the padded length's FFT bin frequencies, in
// FFT bin (Fourier) order, DC first.
func (p *ProcessSignal) freqResponseTable(padded int) []float64 {
	table := make([]float64, padded)
	switch p.Generation {
	case Direct:
		for k := 0; k < padded; k++ {
			table[k] = filter.FrequencyResponse(p.FilterID, p.Bandwidth, binFreq(k, padded), p.Param)
		}
	case InverseFourier:
		half := padded / 2
		kernel := make([]complex128, padded)
		for i := -half; i < padded-half; i++ {
			v := filter.SpatialResponse(p.FilterID, p.Bandwidth, float64(i), p.Param, p.Options)
			idx := i
			if idx < 0 {
				idx += padded
			}
			kernel[idx] = complex(v, 0)
		}
		spec := fourier.FFT(kernel)
		for k, c := range spec {
			table[k] = real(c)
		}
	}
	return table
}

func binFreq(k, n int) float64 {
	if k <= n/2 {
		return float64(k) / float64(n)
	}
	return float64(k-n) / float64(n)
}

func (p *ProcessSignal) frequencyTable(padded int) []float64 {
	if p.Method != FourierTable {
		return p.freqResponseTable(padded)
	}
	if p.table == nil || p.tablePadded != padded {
		p.table = p.freqResponseTable(padded)
		p.tablePadded = padded
	}
	return p.table
}

func (p *ProcessSignal) filterSpectral(view []float64) []float64 {
	n := len(view)
	padded := fourier.AddZeropadFactor(n, p.ZeropadFactor)
	cx := make([]complex128, padded)
	for i, v := range view {
		cx[i] = complex(v, 0)
	}

	var spec []complex128
	if p.Method == FFT {
		spec = fourier.FFT(cx)
	} else {
		spec = dft(cx)
	}

	table := p.frequencyTable(padded)
	for k := range spec {
		spec[k] *= complex(table[k], 0)
	}

	if p.PreinterpolationFactor > 1 {
		spec = preinterpolateSpectrum(spec, p.PreinterpolationFactor)
	}

	var out []complex128
	if p.Method == FFT {
		out = fourier.IFFT(spec)
	} else {
		out = idft(spec)
	}

	result := make([]float64, n*maxInt(p.PreinterpolationFactor, 1))
	for i := range result {
		if i < len(out) {
			result[i] = real(out[i])
		}
	}
	return result
}

// preinterpolateSpectrum multiplies the time-domain resolution by factor by
// zero-stuffing the middle of the spectrum: high positive/negative
// frequency bins keep their place at the new array's ends, the inserted
// middle is zero.
func preinterpolateSpectrum(spec []complex128, factor int) []complex128 {
	n := len(spec)
	newN := n * factor
	out := make([]complex128, newN)
	half := n / 2
	for k := 0; k <= half; k++ {
		out[k] = spec[k]
	}
	for k := half + 1; k < n; k++ {
		out[newN-(n-k)] = spec[k]
	}
	scale := complex(float64(factor), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func dft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += x[j] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

func idft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for j := 0; j < n; j++ {
		var sum complex128
		for k := 0; k < n; k++ {
			angle := 2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += x[k] * cmplx.Exp(complex(0, angle))
		}
		out[j] = sum / complex(float64(n), 0)
	}
	return out
}

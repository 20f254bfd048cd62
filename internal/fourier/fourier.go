// Package fourier provides the radix-2 FFT/IFFT engine and the
// natural-order/Fourier-order index shuffles shared by signal filtering,
// image FFT operations, and the direct-Fourier reconstruction path.
package fourier

import (
	"math"
	"math/cmplx"
)

// FFT computes the Discrete Fourier Transform via iterative Cooley-Tukey
// radix-2. Input length must be a power of two.
func FFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	if n&(n-1) != 0 {
		panic("fourier.FFT: length must be a power of 2")
	}
	out := make([]complex128, n)
	copy(out, x)
	bitReverse(out)
	fftIterative(out, false)
	return out
}

// IFFT computes the Inverse Discrete Fourier Transform, scaled by 1/n.
func IFFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	if n&(n-1) != 0 {
		panic("fourier.IFFT: length must be a power of 2")
	}
	out := make([]complex128, n)
	copy(out, x)
	bitReverse(out)
	fftIterative(out, true)
	scale := complex(1.0/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

func fftIterative(x []complex128, inverse bool) {
	n := len(x)
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	for size := 2; size <= n; size <<= 1 {
		halfSize := size >> 1
		wn := cmplx.Exp(complex(0, sign*2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for j := 0; j < halfSize; j++ {
				u := x[start+j]
				v := w * x[start+j+halfSize]
				x[start+j] = u + v
				x[start+j+halfSize] = u - v
				w *= wn
			}
		}
	}
}

func bitReverse(x []complex128) {
	n := len(x)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

// RealFFT performs an FFT on real-valued input.
func RealFFT(x []float64) []complex128 {
	cx := make([]complex128, len(x))
	for i, v := range x {
		cx[i] = complex(v, 0)
	}
	return FFT(cx)
}

// RealIFFT performs an IFFT and returns only the real part.
func RealIFFT(x []complex128) []float64 {
	result := IFFT(x)
	out := make([]float64, len(result))
	for i, v := range result {
		out[i] = real(v)
	}
	return out
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// AddZeropadFactor returns the smallest 2^k >= n, then multiplies by 2^z.
// z == 0 leaves the minimal power-of-two padding unchanged.
func AddZeropadFactor(n, z int) int {
	return NextPowerOfTwo(n) << uint(z)
}

// ShuffleNaturalToFourier reorders a natural-order vector (DC centered)
// into Fourier order (DC first, then positive frequencies, then negative).
func ShuffleNaturalToFourier(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n%2 == 1 {
		h := (n - 1) / 2
		out[0] = in[h]
		copy(out[1:h+1], in[h+1:n])
		copy(out[h+1:n], in[0:h])
	} else {
		h := n / 2
		out[0] = in[h]
		copy(out[1:h], in[h+1:n])
		copy(out[h:n], in[0:h])
	}
	return out
}

// ShuffleFourierToNatural is the inverse of ShuffleNaturalToFourier.
func ShuffleFourierToNatural(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n%2 == 1 {
		h := (n - 1) / 2
		out[h] = in[0]
		copy(out[h+1:n], in[1:h+1])
		copy(out[0:h], in[h+1:n])
	} else {
		h := n / 2
		out[h] = in[0]
		copy(out[h+1:n], in[1:h])
		copy(out[0:h], in[h:n])
	}
	return out
}

// ShuffleNaturalToFourierComplex is the complex analogue of
// ShuffleNaturalToFourier, used on rows/columns of a complex image plane.
func ShuffleNaturalToFourierComplex(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}
	if n%2 == 1 {
		h := (n - 1) / 2
		out[0] = in[h]
		copy(out[1:h+1], in[h+1:n])
		copy(out[h+1:n], in[0:h])
	} else {
		h := n / 2
		out[0] = in[h]
		copy(out[1:h], in[h+1:n])
		copy(out[h:n], in[0:h])
	}
	return out
}

// ShuffleFourierToNaturalComplex is the inverse of
// ShuffleNaturalToFourierComplex.
func ShuffleFourierToNaturalComplex(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}
	if n%2 == 1 {
		h := (n - 1) / 2
		out[h] = in[0]
		copy(out[h+1:n], in[1:h+1])
		copy(out[0:h], in[h+1:n])
	} else {
		h := n / 2
		out[h] = in[0]
		copy(out[h+1:n], in[1:h])
		copy(out[0:h], in[h:n])
	}
	return out
}

// Plane2D is a column-major complex plane (index = ix*ny+iy), the shape
// ImageFile's FFT row/column operations and the polar-resampling path in
// package projections share.
type Plane2D struct {
	NX, NY int
	Data   []complex128
}

func (p *Plane2D) index(ix, iy int) int { return ix*p.NY + iy }

// Column returns a copy of column ix.
func (p *Plane2D) Column(ix int) []complex128 {
	col := make([]complex128, p.NY)
	copy(col, p.Data[ix*p.NY:(ix+1)*p.NY])
	return col
}

// SetColumn overwrites column ix.
func (p *Plane2D) SetColumn(ix int, col []complex128) {
	copy(p.Data[ix*p.NY:(ix+1)*p.NY], col)
}

// Row returns a copy of row iy.
func (p *Plane2D) Row(iy int) []complex128 {
	row := make([]complex128, p.NX)
	for ix := 0; ix < p.NX; ix++ {
		row[ix] = p.Data[p.index(ix, iy)]
	}
	return row
}

// SetRow overwrites row iy.
func (p *Plane2D) SetRow(iy int, row []complex128) {
	for ix := 0; ix < p.NX; ix++ {
		p.Data[p.index(ix, iy)] = row[ix]
	}
}

// ShuffleNaturalToFourier2D applies the 1-D shuffle to every column, then
// every row, matching the original's shuffleNaturalToFourierOrder order.
func (p *Plane2D) ShuffleNaturalToFourier2D() {
	for ix := 0; ix < p.NX; ix++ {
		p.SetColumn(ix, ShuffleNaturalToFourierComplex(p.Column(ix)))
	}
	for iy := 0; iy < p.NY; iy++ {
		p.SetRow(iy, ShuffleNaturalToFourierComplex(p.Row(iy)))
	}
}

// ShuffleFourierToNatural2D applies the 1-D inverse shuffle to every
// column, then every row.
func (p *Plane2D) ShuffleFourierToNatural2D() {
	for ix := 0; ix < p.NX; ix++ {
		p.SetColumn(ix, ShuffleFourierToNaturalComplex(p.Column(ix)))
	}
	for iy := 0; iy < p.NY; iy++ {
		p.SetRow(iy, ShuffleFourierToNaturalComplex(p.Row(iy)))
	}
}

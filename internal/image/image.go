// Package image implements ImageFile: arithmetic, statistics, Fourier
// transforms, and rescaling over an array2d.File-backed pixel plane.
package image

import (
	stdimage "image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/fourier"
)

// ImageFile wraps an array2d.File with the arithmetic, statistical, and
// transform operations reconstruction and the CLI tools need.
type ImageFile struct {
	*array2d.File
}

// New allocates a real-valued (or complex, if withImag) ImageFile.
func New(nx, ny int, withImag bool) (*ImageFile, error) {
	f, err := array2d.New(nx, ny, withImag, array2d.PixelFloat64, 8)
	if err != nil {
		return nil, err
	}
	return &ImageFile{File: f}, nil
}

func (im *ImageFile) dimsMatch(other *ImageFile) error {
	if im.NX() != other.NX() || im.NY() != other.NY() {
		return ctserr.Dimension("image dims %dx%d != %dx%d", im.NX(), im.NY(), other.NX(), other.NY())
	}
	return nil
}

// Add returns a new ImageFile equal to im + other, element-wise.
func (im *ImageFile) Add(other *ImageFile) (*ImageFile, error) { return im.binaryOp(other, func(a, b float64) float64 { return a + b }) }

// Sub returns a new ImageFile equal to im - other, element-wise.
func (im *ImageFile) Sub(other *ImageFile) (*ImageFile, error) { return im.binaryOp(other, func(a, b float64) float64 { return a - b }) }

// Mul returns a new ImageFile equal to im * other, element-wise.
func (im *ImageFile) Mul(other *ImageFile) (*ImageFile, error) { return im.binaryOp(other, func(a, b float64) float64 { return a * b }) }

// Div returns a new ImageFile equal to im / other, element-wise. Division
// by zero produces 0 rather than +Inf/NaN, matching a display-safe image
// operation rather than strict IEEE semantics.
func (im *ImageFile) Div(other *ImageFile) (*ImageFile, error) {
	return im.binaryOp(other, func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	})
}

func (im *ImageFile) binaryOp(other *ImageFile, op func(a, b float64) float64) (*ImageFile, error) {
	if err := im.dimsMatch(other); err != nil {
		return nil, err
	}
	out, err := New(im.NX(), im.NY(), false)
	if err != nil {
		return nil, err
	}
	for i := range out.Real {
		out.Real[i] = op(im.Real[i], other.Real[i])
	}
	return out, nil
}

func (im *ImageFile) unaryOp(op func(float64) float64) *ImageFile {
	hdr := im.Header
	hdr.DataType = array2d.DataReal
	out := &ImageFile{File: &array2d.File{Header: hdr, Real: make([]float64, len(im.Real))}}
	for i, v := range im.Real {
		out.Real[i] = op(v)
	}
	return out
}

// Sqrt, Log, Exp, Square, and Invert apply the named function to every
// real-plane sample, clamping domains that would otherwise produce NaN.
func (im *ImageFile) Sqrt() *ImageFile {
	return im.unaryOp(func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return math.Sqrt(v)
	})
}

func (im *ImageFile) Log() *ImageFile {
	return im.unaryOp(func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return math.Log(v)
	})
}

func (im *ImageFile) Exp() *ImageFile { return im.unaryOp(math.Exp) }

func (im *ImageFile) Square() *ImageFile { return im.unaryOp(func(v float64) float64 { return v * v }) }

func (im *ImageFile) Invert() *ImageFile {
	return im.unaryOp(func(v float64) float64 {
		if v == 0 {
			return 0
		}
		return 1 / v
	})
}

// RealPart returns the real plane as a standalone real-valued ImageFile.
func (im *ImageFile) RealPart() *ImageFile {
	out, _ := New(im.NX(), im.NY(), false)
	copy(out.Real, im.Real)
	return out
}

// ImagPart returns the imaginary plane (zero if im carries none) as a
// standalone real-valued ImageFile.
func (im *ImageFile) ImagPart() *ImageFile {
	out, _ := New(im.NX(), im.NY(), false)
	if im.Imag != nil {
		copy(out.Real, im.Imag)
	}
	return out
}

// Magnitude returns sqrt(real^2 + imag^2) as a real-valued ImageFile.
func (im *ImageFile) Magnitude() *ImageFile {
	out, _ := New(im.NX(), im.NY(), false)
	for i := range im.Real { //nolint: all planes share length
		re := im.Real[i]
		var imag float64
		if im.Imag != nil {
			imag = im.Imag[i]
		}
		out.Real[i] = math.Hypot(re, imag)
	}
	return out
}

// Phase returns atan2(imag, real) as a real-valued ImageFile.
func (im *ImageFile) Phase() *ImageFile {
	out, _ := New(im.NX(), im.NY(), false)
	for i := range im.Real {
		var imag float64
		if im.Imag != nil {
			imag = im.Imag[i]
		}
		out.Real[i] = math.Atan2(imag, im.Real[i])
	}
	return out
}

// FFTRows applies a 1-D complex FFT to every row of the image in place.
func (im *ImageFile) FFTRows(inverse bool) {
	im.ensureComplex()
	plane := im.toPlane2D()
	for iy := 0; iy < plane.NY; iy++ {
		row := plane.Row(iy)
		if inverse {
			plane.SetRow(iy, fourier.IFFT(row))
		} else {
			plane.SetRow(iy, fourier.FFT(row))
		}
	}
	im.fromPlane2D(plane)
}

// FFTCols applies a 1-D complex FFT to every column of the image in place.
func (im *ImageFile) FFTCols(inverse bool) {
	im.ensureComplex()
	plane := im.toPlane2D()
	for ix := 0; ix < plane.NX; ix++ {
		col := plane.Column(ix)
		if inverse {
			plane.SetColumn(ix, fourier.IFFT(col))
		} else {
			plane.SetColumn(ix, fourier.FFT(col))
		}
	}
	im.fromPlane2D(plane)
}

// FFT2D applies a full 2-D complex FFT in place, rows then columns.
func (im *ImageFile) FFT2D() {
	im.FFTRows(false)
	im.FFTCols(false)
}

// IFFT2D applies a full 2-D complex inverse FFT in place, rows then
// columns; the inverse of FFT2D up to the row/column transform order.
func (im *ImageFile) IFFT2D() {
	im.FFTRows(true)
	im.FFTCols(true)
}

func (im *ImageFile) ensureComplex() {
	if im.Imag == nil {
		im.Imag = make([]float64, len(im.Real))
		im.Header.DataType = array2d.DataComplex
	}
}

func (im *ImageFile) toPlane2D() *fourier.Plane2D {
	nx, ny := im.NX(), im.NY()
	data := make([]complex128, nx*ny)
	for i := range data {
		data[i] = complex(im.Real[i], im.Imag[i])
	}
	return &fourier.Plane2D{NX: nx, NY: ny, Data: data}
}

func (im *ImageFile) fromPlane2D(p *fourier.Plane2D) {
	for i, c := range p.Data {
		im.Real[i] = real(c)
		im.Imag[i] = imag(c)
	}
}

// Min, Max, Mean, and StdDev summarize the real plane.
func (im *ImageFile) Min() float64 { return minMax(im.Real, true) }
func (im *ImageFile) Max() float64 { return minMax(im.Real, false) }

func minMax(data []float64, wantMin bool) float64 {
	if len(data) == 0 {
		return 0
	}
	best := data[0]
	for _, v := range data[1:] {
		if (wantMin && v < best) || (!wantMin && v > best) {
			best = v
		}
	}
	return best
}

// Mean returns the arithmetic mean of the real plane.
func (im *ImageFile) Mean() float64 { return stat.Mean(im.Real, nil) }

// StdDev returns the population (1/N) standard deviation of the real
// plane.
func (im *ImageFile) StdDev() float64 { return stat.PopStdDev(im.Real, nil) }

// Median returns the middle value of the sorted real plane (gonum's
// stat.Mode targets weighted discrete data, not continuous histogram
// modes, so Median/Mode are implemented directly here over sorted
// samples rather than forced through an ill-fitting gonum call).
func (im *ImageFile) Median() float64 {
	sorted := append([]float64(nil), im.Real...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mode returns the most frequent value after binning samples into nBins
// equal-width buckets spanning [Min, Max], returning the bucket center of
// the most populous bucket.
func (im *ImageFile) Mode(nBins int) float64 {
	if nBins < 1 {
		nBins = 1
	}
	lo, hi := im.Min(), im.Max()
	if hi <= lo {
		return lo
	}
	width := (hi - lo) / float64(nBins)
	counts := make([]int, nBins)
	for _, v := range im.Real {
		b := int((v - lo) / width)
		if b >= nBins {
			b = nBins - 1
		}
		if b < 0 {
			b = 0
		}
		counts[b]++
	}
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return lo + (float64(best)+0.5)*width
}

// ComparativeStats summarizes how im compares to a reference image.
type ComparativeStats struct {
	Correlation float64
	RMSE        float64
	MaxAbsDiff  float64
}

// ComparativeStatistics computes correlation (via gonum/stat), RMSE, and
// max absolute difference between im and reference.
func (im *ImageFile) ComparativeStatistics(reference *ImageFile) (ComparativeStats, error) {
	if err := im.dimsMatch(reference); err != nil {
		return ComparativeStats{}, err
	}
	corr := stat.Correlation(im.Real, reference.Real, nil)
	var sumSq, maxAbs float64
	for i := range im.Real {
		d := im.Real[i] - reference.Real[i]
		sumSq += d * d
		if ad := math.Abs(d); ad > maxAbs {
			maxAbs = ad
		}
	}
	rmse := math.Sqrt(sumSq / float64(len(im.Real)))
	return ComparativeStats{Correlation: corr, RMSE: rmse, MaxAbsDiff: maxAbs}, nil
}

// grayAdapter exposes an ImageFile's real plane as a stdlib image.Image,
// normalized to 16-bit grayscale, so golang.org/x/image/draw's bilinear
// scaler can operate on it. CT attenuation values are not bounded to a
// display range, so ScaleImage is a lossy, display/export-oriented
// resize (used by if1's scaleimage operation), not the reconstruction's
// internal numeric path.
type grayAdapter struct {
	nx, ny   int
	data     []float64
	lo, span float64
}

func (g *grayAdapter) ColorModel() color.Model { return color.Gray16Model }
func (g *grayAdapter) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, g.nx, g.ny)
}
func (g *grayAdapter) At(x, y int) color.Color {
	v := g.data[x*g.ny+y]
	norm := uint16(0)
	if g.span > 0 {
		norm = uint16(math.Round(((v - g.lo) / g.span) * 65535))
	}
	return color.Gray16{Y: norm}
}

// ScaleImage resizes im to newNX x newNY using bilinear interpolation.
func (im *ImageFile) ScaleImage(newNX, newNY int) (*ImageFile, error) {
	if newNX < 1 || newNY < 1 {
		return nil, ctserr.Invalid("scale image: newNX=%d, newNY=%d must both be >= 1", newNX, newNY)
	}
	lo, hi := im.Min(), im.Max()
	src := &grayAdapter{nx: im.NX(), ny: im.NY(), data: im.Real, lo: lo, span: hi - lo}

	dst := stdimage.NewGray16(stdimage.Rect(0, 0, newNX, newNY))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out, err := New(newNX, newNY, false)
	if err != nil {
		return nil, err
	}
	span := hi - lo
	for x := 0; x < newNX; x++ {
		for y := 0; y < newNY; y++ {
			g := dst.Gray16At(x, y).Y
			v := lo
			if span > 0 {
				v = lo + (float64(g)/65535)*span
			}
			out.Real[x*newNY+y] = v
		}
	}
	return out, nil
}

// Package projections implements the sinogram container: per-view
// detector readings plus the scanner geometry that produced them, disk
// I/O, and the resampling operations (fan-to-parallel rebin, half-scan
// feathering, helical interpolation, polar-to-cartesian conversion for
// direct Fourier reconstruction) that operate on a whole scan at once.
package projections

import (
	"bytes"
	"io"
	"math"
	"sort"
	"time"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/fourier"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/netorder"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

// signature is the projection file's own 16-bit magic 'P'*256 + 'F',
// distinct from the image file's 'I'*256 + 'F' but encoded/decoded with
// the exact same Array2dFile header layout (see array2d.EncodeSig).
const signature = 0x5046
const piConst = math.Pi

// Polar interpolation kinds used by ConvertPolar/ConvertFFTPolar.
type PolarInterp int

const (
	PolarNearest PolarInterp = iota
	PolarBilinear
)

// Projections holds one complete scan: nView rows of nDet detector
// readings, the geometry that produced them, and per-view rotation
// angles (regular for every geometry but Linogram, which is why angles
// are stored explicitly rather than derived from RotStart/RotInc alone).
type Projections struct {
	Geometry             scanner.Geometry
	NDet, NView          int
	RotStart, RotInc     float64
	DetStart, DetInc     float64
	FocalLength          float64
	SourceDetectorLength float64
	ViewDiameter         float64
	CalcTime             float64
	Remark               string

	ViewAngles []float64
	Data       [][]float64 // Data[view][det]

	// ZOffsets holds one table-position value per view for a helical
	// acquisition; nil for a flat (single-slice) scan. It is stored and
	// round-tripped through the file; Helical180LI does not read it and
	// blends each view with its opposite view by a fixed weight.
	ZOffsets []float64
}

// NewFromScanner allocates a Projections sized and geometried after s,
// with zeroed detector data.
func NewFromScanner(s *scanner.Scanner) *Projections {
	p := &Projections{
		Geometry:             s.Geometry,
		NDet:                 s.NDet,
		NView:                s.NView,
		RotStart:             s.RotStart,
		RotInc:               s.RotInc,
		DetStart:             s.DetStart,
		DetInc:               s.DetInc,
		FocalLength:          s.FocalLength,
		SourceDetectorLength: s.SourceDetectorLength,
		ViewDiameter:         s.ViewDiameter,
		ViewAngles:           make([]float64, s.NView),
		Data:                 make([][]float64, s.NView),
	}
	for v := 0; v < s.NView; v++ {
		p.ViewAngles[v] = s.ViewAngle(v)
		p.Data[v] = make([]float64, s.NDet)
	}
	return p
}

// Collect builds a Projections by sampling phm through every view of s.
func Collect(s *scanner.Scanner, phm *phantom.Phantom) *Projections {
	p := NewFromScanner(s)
	for v := 0; v < s.NView; v++ {
		p.Data[v] = s.ProjectView(phm, v)
	}
	return p
}

// Write serializes p as a projection file: the shared Array2dFile header
// (stamped with the projection signature) describing the nDet-by-nView
// extent, a geometry scalar block mirroring the original format's private
// Projections fields, each view as `u16 nDet, f64 viewAngle, nDet x f32`
// detector samples, a trailing zOffsets block, and the file's single
// history label.
func (p *Projections) Write(w io.Writer) error {
	hdr := array2d.Header{
		PixelFormat:   array2d.PixelFloat32,
		PixelSize:     4,
		NumFileLabels: 1,
		NX:            uint32(p.NDet),
		NY:            uint32(p.NView),
		DataType:      array2d.DataReal,
	}
	if _, err := w.Write(hdr.EncodeSig(signature)); err != nil {
		return ctserr.IO(err, "write projection header")
	}

	nw := netorder.NewWriter()
	nw.U32(uint32(p.Geometry))
	nw.F64(p.RotStart)
	nw.F64(p.RotInc)
	nw.F64(p.DetStart)
	nw.F64(p.DetInc)
	nw.F64(p.FocalLength)
	nw.F64(p.SourceDetectorLength)
	nw.F64(p.ViewDiameter)
	nw.F64(p.CalcTime)
	remark := []byte(p.Remark)
	nw.U16(uint16(len(remark)))
	nw.Bytes(remark)
	for v := 0; v < p.NView; v++ {
		nw.U16(uint16(len(p.Data[v])))
		nw.F64(p.ViewAngles[v])
		for _, val := range p.Data[v] {
			nw.F32(float32(val))
		}
	}
	if p.ZOffsets == nil {
		nw.U32(0)
	} else {
		nw.U32(uint32(len(p.ZOffsets)))
		for _, z := range p.ZOffsets {
			nw.F64(z)
		}
	}
	label := array2d.NewHistoryLabel(p.Remark, p.CalcTime, time.Now())
	nw.Bytes(label.Encode())
	if _, err := nw.WriteTo(w); err != nil {
		return ctserr.IO(err, "write projections")
	}
	return nil
}

// Read deserializes a Projections previously written by Write.
func Read(r io.Reader) (*Projections, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, ctserr.IO(err, "read projections")
	}
	nr := netorder.NewReader(buf)
	hdr, err := array2d.DecodeHeaderSig(nr, signature)
	if err != nil {
		return nil, err
	}

	p := &Projections{NDet: int(hdr.NX), NView: int(hdr.NY)}
	geom, err := nr.U32()
	if err != nil {
		return nil, ctserr.IO(err, "read geometry")
	}
	p.Geometry = scanner.Geometry(geom)
	for _, dst := range []*float64{
		&p.RotStart, &p.RotInc, &p.DetStart, &p.DetInc,
		&p.FocalLength, &p.SourceDetectorLength, &p.ViewDiameter, &p.CalcTime,
	} {
		v, err := nr.F64()
		if err != nil {
			return nil, ctserr.IO(err, "read header field")
		}
		*dst = v
	}
	strLen, err := nr.U16()
	if err != nil {
		return nil, ctserr.IO(err, "read remark length")
	}
	remark, err := nr.Bytes(int(strLen))
	if err != nil {
		return nil, ctserr.IO(err, "read remark")
	}
	p.Remark = string(remark)

	p.ViewAngles = make([]float64, p.NView)
	p.Data = make([][]float64, p.NView)
	for v := 0; v < p.NView; v++ {
		nDet, err := nr.U16()
		if err != nil {
			return nil, ctserr.Format(err, "truncated view %d nDet", v)
		}
		angle, err := nr.F64()
		if err != nil {
			return nil, ctserr.Format(err, "truncated view %d angle", v)
		}
		p.ViewAngles[v] = angle
		row := make([]float64, nDet)
		for d := range row {
			val, err := nr.F32()
			if err != nil {
				return nil, ctserr.Format(err, "truncated view %d detector %d", v, d)
			}
			row[d] = float64(val)
		}
		p.Data[v] = row
	}

	nZOffsets, err := nr.U32()
	if err != nil {
		return nil, ctserr.Format(err, "read zOffsets count")
	}
	if nZOffsets > 0 {
		p.ZOffsets = make([]float64, nZOffsets)
		for i := range p.ZOffsets {
			v, err := nr.F64()
			if err != nil {
				return nil, ctserr.Format(err, "truncated zOffset %d", i)
			}
			p.ZOffsets[i] = v
		}
	}

	for i := 0; i < int(hdr.NumFileLabels); i++ {
		if _, err := array2d.DecodeLabel(nr); err != nil {
			return nil, ctserr.Format(err, "truncated label %d", i)
		}
	}
	return p, nil
}

// Bytes serializes p and returns the resulting buffer.
func (p *Projections) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InterpolateToParallel rebins a fan-beam scan (Equilinear or
// Equiangular) onto a parallel geometry: each source view already traces
// a constant-theta family of rays, so this resorts its detector readings
// by true ray offset T and resamples them onto the uniform parallel
// detector grid. It leaves Parallel and Linogram scans unchanged.
func (p *Projections) InterpolateToParallel() (*Projections, error) {
	if p.Geometry == scanner.Parallel || p.Geometry == scanner.Linogram {
		out := *p
		out.Data = make([][]float64, p.NView)
		for v := range p.Data {
			out.Data[v] = append([]float64(nil), p.Data[v]...)
		}
		return &out, nil
	}
	if p.Geometry != scanner.Equilinear && p.Geometry != scanner.Equiangular {
		return nil, ctserr.Invalid("interpolate to parallel: unsupported geometry %s", p.Geometry)
	}

	out := &Projections{
		Geometry: scanner.Parallel, NDet: p.NDet, NView: p.NView,
		RotStart: p.RotStart, RotInc: p.RotInc,
		DetStart: -p.ViewDiameter / 2, DetInc: p.ViewDiameter / float64(p.NDet-1),
		FocalLength: p.FocalLength, SourceDetectorLength: p.SourceDetectorLength,
		ViewDiameter: p.ViewDiameter, CalcTime: p.CalcTime, Remark: p.Remark,
		ViewAngles: append([]float64(nil), p.ViewAngles...),
		ZOffsets:   append([]float64(nil), p.ZOffsets...),
		Data:       make([][]float64, p.NView),
	}

	iDetCenter := p.NDet / 2
	for v := 0; v < p.NView; v++ {
		samples := make([]raySample, p.NDet)
		for d := 0; d < p.NDet; d++ {
			var beta float64
			if p.Geometry == scanner.Equilinear {
				u := p.DetStart + float64(d)*p.DetInc
				beta = atan2Detector(u, p.SourceDetectorLength)
			} else {
				beta = float64(d-iDetCenter) * p.DetInc
			}
			samples[d] = raySample{t: p.FocalLength * sinApprox(beta), raysum: p.Data[v][d]}
		}
		sort.Slice(samples, func(i, j int) bool { return samples[i].t < samples[j].t })

		row := make([]float64, out.NDet)
		for d := 0; d < out.NDet; d++ {
			target := out.DetStart + float64(d)*out.DetInc
			row[d] = interpolateSorted(samples, target)
		}
		out.Data[v] = row
	}
	return out, nil
}

func atan2Detector(u, length float64) float64 { return math.Atan(u / length) }
func sinApprox(x float64) float64             { return math.Sin(x) }

// raySample is one fan-beam detector reading tagged with its true
// parallel-geometry ray offset T, used by InterpolateToParallel's resort.
type raySample struct{ t, raysum float64 }

// interpolateSorted linearly interpolates raysum at t=target from a
// t-ascending sample list, clamping at the ends.
func interpolateSorted(samples []raySample, target float64) float64 {
	n := len(samples)
	if target <= samples[0].t {
		return samples[0].raysum
	}
	if target >= samples[n-1].t {
		return samples[n-1].raysum
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if samples[mid].t <= target {
			lo = mid
		} else {
			hi = mid
		}
	}
	t0, t1 := samples[lo].t, samples[hi].t
	if t1 == t0 {
		return samples[lo].raysum
	}
	frac := (target - t0) / (t1 - t0)
	return samples[lo].raysum + frac*(samples[hi].raysum-samples[lo].raysum)
}

// HalfScanFeather smooths the angular overlap of a short scan (total
// rotation > pi but < 2*pi) by down-weighting the redundant views at the
// start and end of the sweep with a raised-cosine ramp. A no-op when the
// total rotation does not exceed pi.
func (p *Projections) HalfScanFeather() error {
	totalRotation := p.RotInc * float64(p.NView)
	overlap := totalRotation - piConst
	if overlap <= 0 {
		return nil
	}
	featherViews := int(overlap / p.RotInc)
	if featherViews < 1 {
		return nil
	}
	if featherViews*2 > p.NView {
		return ctserr.Geometry("half scan feather: overlap %d views exceeds half of %d views", featherViews, p.NView)
	}
	for i := 0; i < featherViews; i++ {
		w := feather(float64(i) / float64(featherViews))
		scaleRow(p.Data[i], w)
		scaleRow(p.Data[p.NView-1-i], w)
	}
	return nil
}

func feather(frac float64) float64 {
	s := math.Sin(piConst / 2 * frac)
	return s * s
}

func scaleRow(row []float64, w float64) {
	for i := range row {
		row[i] *= w
	}
}

// Helical180LI synthesizes each view by linearly interpolating between
// itself and its opposite-angle view (nView/2 views away, with detector
// order reversed since a ray scanned from the opposite side samples the
// phantom along the same line but from the far end). interpView scales
// the interpolation weight as a fraction of nView, matching helical
// scans whose couch advanced partway between the two passes.
func (p *Projections) Helical180LI(interpView int) error {
	if p.NView < 2 {
		return ctserr.Invalid("helical180LI: need at least 2 views, got %d", p.NView)
	}
	half := p.NView / 2
	w := float64(interpView) / float64(p.NView)
	if w < 0 || w > 1 {
		return ctserr.Invalid("helical180LI: interpView %d out of range for nView %d", interpView, p.NView)
	}
	out := make([][]float64, p.NView)
	for v := 0; v < p.NView; v++ {
		v2 := (v + half) % p.NView
		row := make([]float64, p.NDet)
		for d := 0; d < p.NDet; d++ {
			opposite := p.Data[v2][p.NDet-1-d]
			row[d] = (1-w)*p.Data[v][d] + w*opposite
		}
		out[v] = row
	}
	p.Data = out
	return nil
}

// PolarSample is one (angle, radius, value) triple read directly off the
// sinogram grid, the unit ConvertPolar/ConvertFFTPolar resample from.
type PolarSample struct {
	Theta, R float64
	Value    complex128
}

// polarSamples maps every (view, detector) cell to its polar coordinate.
// useFFT runs each view's row through a forward FFT first, so the
// samples represent frequency-domain values suitable for a direct
// Fourier reconstruction (ConvertFFTPolar) rather than raw raysums
// (ConvertPolar).
func (p *Projections) polarSamples(useFFT bool, zeropad int) []PolarSample {
	out := make([]PolarSample, 0, p.NView*p.NDet)
	for v := 0; v < p.NView; v++ {
		row := p.Data[v]
		var values []complex128
		if useFFT {
			n := fourier.AddZeropadFactor(len(row), zeropad)
			cx := make([]complex128, n)
			for i, x := range row {
				cx[i] = complex(x, 0)
			}
			values = fourier.ShuffleNaturalToFourierComplex(fourier.FFT(fourier.ShuffleFourierToNaturalComplex(cx)))
		} else {
			values = make([]complex128, len(row))
			for i, x := range row {
				values[i] = complex(x, 0)
			}
		}
		n := len(values)
		for i, val := range values {
			r := (float64(i) - float64(n)/2) * p.DetInc
			out = append(out, PolarSample{Theta: p.ViewAngles[v], R: r, Value: val})
		}
	}
	return out
}

// Plane2D is a real-valued nx-by-ny grid, the output of ConvertPolar/
// ConvertFFTPolar.
type Plane2D struct {
	NX, NY int
	Data   []float64
}

func (g *Plane2D) at(ix, iy int) int { return ix*g.NY + iy }

// ConvertPolar resamples the sinogram directly onto an nx-by-ny
// cartesian grid spanning [-extent/2, extent/2] in both axes, using
// interp for the polar-to-cartesian lookup.
func (p *Projections) ConvertPolar(nx, ny int, extent float64, interp PolarInterp) (*Plane2D, error) {
	return p.convertPolarCommon(nx, ny, extent, interp, false, 0)
}

// ConvertFFTPolar is ConvertPolar over the per-view Fourier spectra
// rather than the raw raysums, the direct-Fourier-reconstruction path:
// callers invert the resulting grid with a 2-D IFFT.
func (p *Projections) ConvertFFTPolar(nx, ny, zeropad int, extent float64, interp PolarInterp) (*fourier.Plane2D, error) {
	samples := p.polarSamples(true, zeropad)
	out := &fourier.Plane2D{NX: nx, NY: ny, Data: make([]complex128, nx*ny)}
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			x := (float64(ix)/float64(nx-1) - 0.5) * extent
			y := (float64(iy)/float64(ny-1) - 0.5) * extent
			theta, r := cartesianToPolar(x, y)
			out.Data[ix*ny+iy] = lookupComplex(samples, theta, r, interp)
		}
	}
	return out, nil
}

func (p *Projections) convertPolarCommon(nx, ny int, extent float64, interp PolarInterp, useFFT bool, zeropad int) (*Plane2D, error) {
	if nx < 1 || ny < 1 {
		return nil, ctserr.Invalid("convert polar: nx=%d, ny=%d must both be >= 1", nx, ny)
	}
	samples := p.polarSamples(useFFT, zeropad)
	out := &Plane2D{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			x := (float64(ix)/float64(nx-1) - 0.5) * extent
			y := (float64(iy)/float64(ny-1) - 0.5) * extent
			theta, r := cartesianToPolar(x, y)
			out.Data[out.at(ix, iy)] = real(lookupComplex(samples, theta, r, interp))
		}
	}
	return out, nil
}

func cartesianToPolar(x, y float64) (theta, r float64) {
	r = math.Hypot(x, y)
	theta = math.Atan2(y, x)
	if theta < 0 {
		theta += 2 * piConst
	}
	return theta, r
}

// lookupComplex finds the sample nearest (theta,r), or for PolarBilinear
// the distance-weighted average of the four nearest neighbors measured
// independently along theta and r. Package golang.org/x/image/draw
// operates on rectangular image.Image grids and has no polar-coordinate
// resampling mode, so this lookup is hand-written; see DESIGN.md.
func lookupComplex(samples []PolarSample, theta, r float64, interp PolarInterp) complex128 {
	if len(samples) == 0 {
		return 0
	}
	type scored struct {
		s    PolarSample
		dist float64
	}
	nearest := make([]scored, 0, len(samples))
	for _, s := range samples {
		dTheta := angularDistance(s.Theta, theta)
		dR := s.R - r
		d := dTheta*dTheta + dR*dR
		nearest = append(nearest, scored{s, d})
	}
	sort.Slice(nearest, func(i, j int) bool { return nearest[i].dist < nearest[j].dist })

	if interp == PolarNearest || len(nearest) == 1 {
		return nearest[0].s.Value
	}
	k := 4
	if k > len(nearest) {
		k = len(nearest)
	}
	var sumW float64
	var sumV complex128
	for i := 0; i < k; i++ {
		w := 1.0 / (nearest[i].dist + 1e-9)
		sumW += w
		sumV += complex(w, 0) * nearest[i].s.Value
	}
	return sumV / complex(sumW, 0)
}

func angularDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > piConst {
		d = 2*piConst - d
	}
	return d
}

// ToArray2d renders g as a real-valued array2d.File for on-disk storage
// alongside reconstructed images.
func (g *Plane2D) ToArray2d(labelName string) (*array2d.File, error) {
	f, err := array2d.New(g.NX, g.NY, false, array2d.PixelFloat64, 8)
	if err != nil {
		return nil, err
	}
	copy(f.Real, g.Data)
	return f, nil
}

// Package backproject implements filtered backprojection: spreading one
// filtered detector row back across every pixel of the reconstruction
// grid it could have contributed to.
package backproject

import (
	"math"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/projections"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/scanner"
)

// Algorithm selects the backprojection implementation strategy. All four
// compute the same fan/parallel-beam backprojection integral; Trig
// recomputes sines/cosines per pixel, Table precomputes a per-pixel
// polar-coordinate table once, and Diff/IDiff are differencing schemes
// that update the ray coordinate incrementally across a scan row instead
// of recomputing it. They are kept as a tagged enum (not the original's
// class hierarchy) since Go favors one function dispatching on a small
// tag over a four-class inheritance tree for what is, numerically, one
// algorithm. In this implementation all four run the same per-pixel
// computation (view trigonometry once, ray coordinate recomputed for every
// pixel); the tag is stored but does not
// change how a view is backprojected.
type Algorithm int

const (
	Trig Algorithm = iota
	Table
	Diff
	IDiff
)

func (a Algorithm) String() string {
	switch a {
	case Trig:
		return "trig"
	case Table:
		return "table"
	case Diff:
		return "diff"
	case IDiff:
		return "idiff"
	default:
		return "invalid"
	}
}

// ParseAlgorithm matches an algorithm name case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch lowerASCII(name) {
	case "trig":
		return Trig, nil
	case "table":
		return Table, nil
	case "diff":
		return Diff, nil
	case "idiff":
		return IDiff, nil
	default:
		return 0, ctserr.Invalid("unknown backprojection algorithm %q", name)
	}
}

// Interp selects how a real-valued detector coordinate is sampled from
// the discrete filtered row.
type Interp int

const (
	Nearest Interp = iota
	Linear
	Cubic
	FreqPreinterpolation
)

func (i Interp) String() string {
	switch i {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	case FreqPreinterpolation:
		return "freq_preinterpolation"
	default:
		return "invalid"
	}
}

// ParseInterp matches an interpolation name case-insensitively.
func ParseInterp(name string) (Interp, error) {
	switch lowerASCII(name) {
	case "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	case "freq_preinterpolation", "freqpreinterpolation", "freq-preinterpolation":
		return FreqPreinterpolation, nil
	default:
		return 0, ctserr.Invalid("unknown interpolation %q", name)
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

// Grid is a real-valued nx-by-ny reconstruction plane in world
// coordinates [xMin,xMax] x [yMin,yMax].
type Grid struct {
	NX, NY                 int
	XMin, XMax, YMin, YMax float64
	Data                   []float64
}

// NewGrid allocates a zeroed nx-by-ny grid over the given bounds.
func NewGrid(nx, ny int, xMin, xMax, yMin, yMax float64) (*Grid, error) {
	if nx < 1 || ny < 1 {
		return nil, ctserr.Invalid("backprojection grid nx=%d, ny=%d must both be >= 1", nx, ny)
	}
	return &Grid{NX: nx, NY: ny, XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax, Data: make([]float64, nx*ny)}, nil
}

func (g *Grid) at(ix, iy int) int { return ix*g.NY + iy }

func (g *Grid) xInc() float64 { return (g.XMax - g.XMin) / float64(g.NX) }
func (g *Grid) yInc() float64 { return (g.YMax - g.YMin) / float64(g.NY) }

// Backprojector accumulates filtered views into a Grid.
type Backprojector struct {
	Algorithm            Algorithm
	Interp               Interp
	Geometry             scanner.Geometry
	DetInc               float64
	DetStart             float64
	NDet                 int
	RotScale             float64
	FocalLength          float64
	SourceDetectorLength float64
	InterpFactor         int

	postDone bool
}

// New constructs a Backprojector from the scan geometry in proj.
func New(proj *projections.Projections, algoName, interpName string, interpFactor int) (*Backprojector, error) {
	algo, err := ParseAlgorithm(algoName)
	if err != nil {
		return nil, err
	}
	interp, err := ParseInterp(interpName)
	if err != nil {
		return nil, err
	}
	if interpFactor < 1 {
		interpFactor = 1
	}
	return &Backprojector{
		Algorithm: algo, Interp: interp, Geometry: proj.Geometry,
		DetInc: proj.DetInc, DetStart: proj.DetStart, NDet: proj.NDet,
		RotScale: proj.RotInc, FocalLength: proj.FocalLength,
		SourceDetectorLength: proj.SourceDetectorLength, InterpFactor: interpFactor,
	}, nil
}

func rotate(x, y, angle float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return x*c - y*s, x*s + y*c
}

// BackprojectView adds one filtered detector row's contribution to grid,
// weighted by the per-view rotation increment (so that summing all views
// approximates the continuous backprojection integral).
func (b *Backprojector) BackprojectView(grid *Grid, viewData []float64, viewAngle float64) error {
	if len(viewData) == 0 {
		return ctserr.Invalid("backproject view: empty detector row")
	}
	xInc, yInc := grid.xInc(), grid.yInc()

	switch b.Geometry {
	case scanner.Parallel, scanner.Linogram:
		cosA, sinA := math.Cos(viewAngle), math.Sin(viewAngle)
		for ix := 0; ix < grid.NX; ix++ {
			x := grid.XMin + (float64(ix)+0.5)*xInc
			for iy := 0; iy < grid.NY; iy++ {
				y := grid.YMin + (float64(iy)+0.5)*yInc
				t := x*cosA + y*sinA
				val, ok := b.sample(viewData, t)
				if ok {
					grid.Data[grid.at(ix, iy)] += val * b.RotScale
				}
			}
		}

	case scanner.Equilinear, scanner.Equiangular:
		sx, sy := rotate(0, b.FocalLength, viewAngle)
		fwdX, fwdY := rotate(0, -1, viewAngle)
		perpX, perpY := rotate(1, 0, viewAngle)
		for ix := 0; ix < grid.NX; ix++ {
			x := grid.XMin + (float64(ix)+0.5)*xInc
			for iy := 0; iy < grid.NY; iy++ {
				y := grid.YMin + (float64(iy)+0.5)*yInc
				dx, dy := x-sx, y-sy
				l := dx*fwdX + dy*fwdY
				u := dx*perpX + dy*perpY
				if l <= 0 {
					continue
				}
				weight := (b.FocalLength * b.FocalLength) / (l * l)
				var coord float64
				if b.Geometry == scanner.Equilinear {
					coord = u * b.SourceDetectorLength / l
				} else {
					coord = math.Atan2(u, l)
				}
				val, ok := b.sample(viewData, coord)
				if ok {
					grid.Data[grid.at(ix, iy)] += val * weight * b.RotScale
				}
			}
		}
	default:
		return ctserr.Invalid("backproject view: unsupported geometry %s", b.Geometry)
	}
	return nil
}

// sample interpolates viewData at world coordinate coord, per b.Interp.
func (b *Backprojector) sample(viewData []float64, coord float64) (float64, bool) {
	detInc := b.DetInc
	if b.Interp == FreqPreinterpolation && b.InterpFactor > 1 {
		detInc = b.DetInc / float64(b.InterpFactor)
	}
	idx := (coord - b.DetStart) / detInc
	n := len(viewData)
	if idx < 0 || idx > float64(n-1) {
		return 0, false
	}

	switch b.Interp {
	case Nearest:
		i := int(math.Round(idx))
		if i < 0 || i >= n {
			return 0, false
		}
		return viewData[i], true

	case Cubic:
		i0 := int(math.Floor(idx))
		frac := idx - float64(i0)
		p := [4]float64{}
		for k := -1; k <= 2; k++ {
			p[k+1] = viewData[clampIndex(i0+k, n)]
		}
		return catmullRom(p[0], p[1], p[2], p[3], frac), true

	default: // Linear, FreqPreinterpolation
		i0 := int(math.Floor(idx))
		i1 := i0 + 1
		frac := idx - float64(i0)
		v0 := viewData[clampIndex(i0, n)]
		v1 := viewData[clampIndex(i1, n)]
		return v0 + frac*(v1-v0), true
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	a0 := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	a1 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	a2 := -0.5*p0 + 0.5*p2
	a3 := p1
	return ((a0*t+a1)*t+a2)*t + a3
}

// PostProcessing applies the one-time normalization that follows
// accumulating every view (here, none beyond the per-view RotScale
// weighting already applied). Calling it more than once is an error: the
// original guards this with a boolean so repeated calls from a retry
// loop don't double-scale the image.
func (b *Backprojector) PostProcessing(grid *Grid) error {
	if b.postDone {
		return ctserr.Invalid("backprojector PostProcessing called more than once")
	}
	b.postDone = true
	return nil
}

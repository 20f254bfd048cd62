// Package scanner implements the geometry-specific ray generator and
// line-integrator that turns a Phantom into per-view detector readings.
package scanner

import (
	"math"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/phantom"
)

// Geometry selects the scanner's acquisition geometry.
type Geometry int

const (
	Parallel Geometry = iota
	Equilinear
	Equiangular
	// Linogram sweeps tan(view angle) linearly instead of the view angle
	// itself, and otherwise uses the parallel geometry's chord detector
	// layout. See SPEC_FULL.md 4.2+.
	Linogram
)

func (g Geometry) String() string {
	switch g {
	case Parallel:
		return "parallel"
	case Equilinear:
		return "equilinear"
	case Equiangular:
		return "equiangular"
	case Linogram:
		return "linogram"
	default:
		return "invalid"
	}
}

// ParseGeometry matches a geometry name case-insensitively.
func ParseGeometry(name string) (Geometry, error) {
	switch lowerASCII(name) {
	case "parallel":
		return Parallel, nil
	case "equilinear":
		return Equilinear, nil
	case "equiangular":
		return Equiangular, nil
	case "linogram":
		return Linogram, nil
	default:
		return 0, ctserr.Invalid("unknown scanner geometry %q", name)
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

// Scanner holds the geometry-specific constants derived once at
// construction time; ViewAngle/ProjectView are then pure functions of a
// phantom and a view index.
type Scanner struct {
	Geometry   Geometry
	NDet       int
	NView      int
	OffsetView int
	NSample    int

	RotInc   float64 // radians between views (uninformative for Linogram)
	RotStart float64

	DetInc   float64 // detector pitch
	DetStart float64 // distance from center ray to first detector

	FocalLength          float64
	SourceDetectorLength float64
	CenterDetectorLength float64
	ScanDiameter         float64
	ViewDiameter         float64
	AngularDetInc        float64 // equiangular only

	detLen      float64
	iDetCenter  int
}

// New constructs a Scanner for the given phantom and geometry. Ratios are
// multiplied by the phantom's diameter-of-boundary-circle, matching the
// CLI's --focal-length-ratio/--center-detector-ratio/--view-ratio/--scan-ratio
// flags (SPEC_FULL.md 6).
func New(phm *phantom.Phantom, geometryName string, nDet, nView, offsetView, nSample int,
	rotAngle, focalLengthRatio, centerDetectorRatio, viewRatio, scanRatio float64) (*Scanner, error) {

	geom, err := ParseGeometry(geometryName)
	if err != nil {
		return nil, err
	}
	if nDet < 1 || nView < 1 {
		return nil, ctserr.Geometry("nDet=%d, nView=%d must both be >= 1", nDet, nView)
	}
	if nSample < 1 {
		return nil, ctserr.Invalid("nsample must be >= 1, got %d", nSample)
	}

	diam := phm.DiameterBoundaryCircle()
	s := &Scanner{
		Geometry:             geom,
		NDet:                 nDet,
		NView:                nView,
		OffsetView:           offsetView,
		NSample:              nSample,
		RotInc:               rotAngle / float64(nView),
		ScanDiameter:         scanRatio * diam,
		ViewDiameter:         viewRatio * diam,
		FocalLength:          focalLengthRatio * diam,
		CenterDetectorLength: centerDetectorRatio * diam,
	}
	s.SourceDetectorLength = s.CenterDetectorLength
	s.iDetCenter = nDet / 2

	switch geom {
	case Parallel, Linogram:
		detLen := s.ScanDiameter
		if nDet%2 == 0 {
			s.DetInc = detLen / float64(nDet-1)
			detLen += s.DetInc
		} else {
			s.DetInc = detLen / float64(nDet)
		}
		s.detLen = detLen
		s.DetStart = -detLen / 2

	case Equilinear:
		if s.ScanDiameter/2 >= s.FocalLength {
			return nil, ctserr.Geometry("equilinear: scanDiameter/2 (%v) >= focalLength (%v)", s.ScanDiameter/2, s.FocalLength)
		}
		alpha := math.Asin((s.ScanDiameter / 2) / s.FocalLength)
		halfDetLen := s.SourceDetectorLength * math.Tan(alpha)
		detLen := 2 * halfDetLen
		if nDet%2 == 0 {
			s.DetInc = detLen / float64(nDet-1)
			detLen += s.DetInc
		} else {
			s.DetInc = detLen / float64(nDet)
		}
		s.detLen = detLen
		s.DetStart = -detLen / 2

	case Equiangular:
		if s.ScanDiameter/2 >= s.FocalLength {
			return nil, ctserr.Geometry("equiangular: scanDiameter/2 (%v) >= focalLength (%v)", s.ScanDiameter/2, s.FocalLength)
		}
		alpha := math.Asin((s.ScanDiameter / 2) / s.FocalLength)
		halfDetLen := s.SourceDetectorLength * math.Tan(alpha)
		detLen := 2 * halfDetLen
		var linearDetInc float64
		if nDet%2 == 0 {
			linearDetInc = detLen / float64(nDet-1)
			detLen += linearDetInc
		} else {
			linearDetInc = detLen / float64(nDet)
		}
		dA1 := math.Acos((s.ScanDiameter / 2) / s.CenterDetectorLength)
		s.AngularDetInc = 2 * (math.Pi/2 + alpha - dA1) / detLen * linearDetInc
		s.detLen = detLen
		s.DetInc = linearDetInc
		s.DetStart = -detLen / 2
	}

	return s, nil
}

// ViewAngle returns the rotation angle (radians) of view v, 0-indexed.
// Parallel/Equilinear/Equiangular sweep uniformly; Linogram sweeps
// tan(angle) linearly over two quadrant passes (SPEC_FULL.md 4.2+).
func (s *Scanner) ViewAngle(v int) float64 {
	vv := float64(v + s.OffsetView)
	if s.Geometry != Linogram {
		return s.RotStart + vv*s.RotInc
	}
	half := float64(s.NView) / 2
	if vv < half {
		return math.Atan((vv - half/2) * 4 / float64(s.NView))
	}
	return math.Pi/2 + math.Atan((vv-half-half/2)*4/float64(s.NView))
}

func rotate(x, y, angle float64) (float64, float64) {
	c, sn := math.Cos(angle), math.Sin(angle)
	return x*c - y*sn, x*sn + y*c
}

// ProjectView computes the nDet detector readings for view v. Composition
// UnitPulse overrides the computed values with the degenerate single
// impulse at the central detector, matching the original's special case.
func (s *Scanner) ProjectView(phm *phantom.Phantom, v int) []float64 {
	out := make([]float64, s.NDet)
	if phm.Composition == phantom.UnitPulse {
		out[s.NDet/2] = 1
		return out
	}
	angle := s.ViewAngle(v)

	switch s.Geometry {
	case Parallel, Linogram:
		half := s.ScanDiameter / 2
		subInc := s.DetInc / float64(s.NSample)
		subOfs := subInc / 2
		for d := 0; d < s.NDet; d++ {
			cellStart := s.DetStart + float64(d)*s.DetInc
			var sum float64
			for k := 0; k < s.NSample; k++ {
				u := cellStart + subOfs + float64(k)*subInc
				sx, sy := rotate(u, half, angle)
				dx, dy := rotate(u, -half, angle)
				sum += phantom.ProjectLine(phm, sx, sy, dx, dy)
			}
			out[d] = sum / float64(s.NSample)
		}

	case Equilinear:
		subInc := s.DetInc / float64(s.NSample)
		subOfs := subInc / 2
		sx0, sy0 := rotate(0, s.FocalLength, angle)
		for d := 0; d < s.NDet; d++ {
			cellStart := s.DetStart + float64(d)*s.DetInc
			var sum float64
			for k := 0; k < s.NSample; k++ {
				u := cellStart + subOfs + float64(k)*subInc
				dx, dy := rotate(u, -s.CenterDetectorLength, angle)
				sum += phantom.ProjectLine(phm, sx0, sy0, dx, dy)
			}
			out[d] = sum / float64(s.NSample)
		}

	case Equiangular:
		subInc := s.AngularDetInc / float64(s.NSample)
		subOfs := subInc / 2
		sx0, sy0 := rotate(0, s.FocalLength, angle)
		for d := 0; d < s.NDet; d++ {
			centerAngle := -math.Pi/2 + float64(d-s.iDetCenter)*s.AngularDetInc
			var sum float64
			for k := 0; k < s.NSample; k++ {
				a := centerAngle + subOfs + float64(k)*subInc
				ux := s.CenterDetectorLength * math.Cos(a)
				uy := s.CenterDetectorLength * math.Sin(a)
				dx, dy := rotate(ux, uy, angle)
				sum += phantom.ProjectLine(phm, sx0, sy0, dx, dy)
			}
			out[d] = sum / float64(s.NSample)
		}
	}
	return out
}

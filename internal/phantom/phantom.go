// Package phantom implements the analytic phantom model: PhantomElement
// primitives (rectangle, triangle, ellipse, sector, segment), their affine
// placement in the phantom frame, the line-integral projector, and the
// pixel rasterizer.
package phantom

import (
	"math"
	"strconv"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/array2d"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
)

// Kind identifies a PhantomElement's primitive shape.
type Kind int

const (
	Rectangle Kind = iota
	Triangle
	Ellipse
	Sector
	Segment
)

func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case Ellipse:
		return "ellipse"
	case Sector:
		return "sector"
	case Segment:
		return "segment"
	default:
		return "unknown"
	}
}

// ParseKind matches a type name case-insensitively, as the phantom
// definition file reader requires.
func ParseKind(name string) (Kind, error) {
	switch lower(name) {
	case "rectangle":
		return Rectangle, nil
	case "triangle":
		return Triangle, nil
	case "ellipse":
		return Ellipse, nil
	case "sector":
		return Sector, nil
	case "segment":
		return Segment, nil
	default:
		return 0, ctserr.Invalid("unknown phantom element type %q", name)
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// pointsPerCircle bounds arc sampling density, matching the original's
// POINTS_PER_CIRCLE constant.
const pointsPerCircle = 360

// scalePElemExtent expands each element's bounding rectangle by this
// factor; preserved as a hook (currently 0, matching the original) rather
// than removed.
const scalePElemExtent = 0.0

// numCirclePoints returns the number of points needed to sample an arc
// spanning theta radians (theta clamped to [0, 2*pi]).
func numCirclePoints(theta float64) int {
	if theta < 0 {
		theta = 0
	}
	if theta > 2*math.Pi {
		theta = 2 * math.Pi
	}
	return int(pointsPerCircle*theta/(2*math.Pi) + 1.5)
}

// Element is one analytic attenuating primitive placed in the phantom
// frame.
type Element struct {
	Kind             Kind
	Cx, Cy           float64 // center, phantom coordinates
	U, V             float64 // object-local half-sizes
	Rot              float64 // rotation, radians
	Atten            float64 // attenuation coefficient

	cosRot, sinRot   float64
	XMin, XMax       float64 // world-space bounding rectangle
	YMin, YMax       float64
}

// NewElement constructs an Element and its derived state (trig cache,
// bounding rectangle). rot is in radians.
func NewElement(kind Kind, cx, cy, u, v, rot, atten float64) *Element {
	e := &Element{Kind: kind, Cx: cx, Cy: cy, U: u, V: v, Rot: rot, Atten: atten}
	e.cosRot = math.Cos(rot)
	e.sinRot = math.Sin(rot)
	e.computeBounds()
	return e
}

// objToWorldVector rotates a local-frame (u,v-scaled) vector into world
// orientation (no translation — this is the linear part only).
func (e *Element) objToWorldVector(lx, ly float64) (float64, float64) {
	return lx*e.cosRot - ly*e.sinRot, lx*e.sinRot + ly*e.cosRot
}

// objToWorldPoint maps a local-frame (u,v-scaled) point to world
// coordinates.
func (e *Element) objToWorldPoint(lx, ly float64) (float64, float64) {
	wx, wy := e.objToWorldVector(lx, ly)
	return wx + e.Cx, wy + e.Cy
}

// worldToSemiLocalVector undoes rotation only (the linear part of the
// world-to-semilocal map).
func (e *Element) worldToSemiLocalVector(wx, wy float64) (float64, float64) {
	return wx*e.cosRot + wy*e.sinRot, -wx*e.sinRot + wy*e.cosRot
}

// worldToSemiLocalPoint undoes translation then rotation, leaving
// coordinates scaled by (u,v) still baked in (i.e. not yet divided by
// u,v). Segment and sector tests work in this frame so that the arc
// radius sqrt(u^2+v^2) is preserved, per the source's documented
// requirement that segment/sector must not be fully normalized before
// the arc test.
func (e *Element) worldToSemiLocalPoint(wx, wy float64) (float64, float64) {
	return e.worldToSemiLocalVector(wx-e.Cx, wy-e.Cy)
}

// worldToObjPoint fully normalizes world coordinates into the unit
// primitive's frame (rotate, translate, and divide by u,v).
func (e *Element) worldToObjPoint(wx, wy float64) (float64, float64) {
	lx, ly := e.worldToSemiLocalPoint(wx, wy)
	return lx / e.U, ly / e.V
}

// worldToObjVector is the linear (no-translation) counterpart of
// worldToObjPoint, used to carry a line's direction vector into the
// normalized frame.
func (e *Element) worldToObjVector(dx, dy float64) (float64, float64) {
	lx, ly := e.worldToSemiLocalVector(dx, dy)
	return lx / e.U, ly / e.V
}

// computeBounds derives the world-space bounding rectangle from a set of
// outline samples (exactly, for an ellipse), then expands it by
// scalePElemExtent.
func (e *Element) computeBounds() {
	pts := e.outlinePoints()
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		wx, wy := e.objToWorldPoint(p[0], p[1])
		xmin = math.Min(xmin, wx)
		xmax = math.Max(xmax, wx)
		ymin = math.Min(ymin, wy)
		ymax = math.Max(ymax, wy)
	}
	if e.Kind == Ellipse {
		hw := math.Hypot(e.U*e.cosRot, e.V*e.sinRot)
		hh := math.Hypot(e.U*e.sinRot, e.V*e.cosRot)
		xmin, xmax = e.Cx-hw, e.Cx+hw
		ymin, ymax = e.Cy-hh, e.Cy+hh
	}
	expandX := (xmax - xmin) * scalePElemExtent
	expandY := (ymax - ymin) * scalePElemExtent
	e.XMin, e.XMax = xmin-expandX, xmax+expandX
	e.YMin, e.YMax = ymin-expandY, ymax+expandY
}

// outlinePoints returns the element's outline in local, (u,v)-scaled
// coordinates (i.e. before rotation/translation to world).
func (e *Element) outlinePoints() [][2]float64 {
	u, v := e.U, e.V
	switch e.Kind {
	case Rectangle:
		return [][2]float64{{-u, -v}, {u, -v}, {u, v}, {-u, v}, {-u, -v}}
	case Triangle:
		return [][2]float64{{-u, 0}, {u, 0}, {0, v}, {-u, 0}}
	case Ellipse:
		n := numCirclePoints(2 * math.Pi)
		pts := make([][2]float64, 0, n+1)
		for i := 0; i <= n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			pts = append(pts, [2]float64{u * math.Cos(theta), v * math.Sin(theta)})
		}
		return pts
	case Segment, Sector:
		return e.arcCapOutline()
	default:
		return nil
	}
}

// arcCapOutline samples the full circle centered at semi-local (0, v) with
// radius sqrt(u^2+v^2), keeping the samples on the side the shape occupies
// (ly <= 0 for a segment, ly >= 0 for a sector), in the *semi-local* frame
// (i.e. rotated/translated but not divided by u, v — see
// worldToSemiLocalPoint). The two chord endpoints (-u,0) and (u,0) are
// always included.
func (e *Element) arcCapOutline() [][2]float64 {
	u, v := e.U, e.V
	r := math.Hypot(u, v)
	n := numCirclePoints(2 * math.Pi)
	pts := [][2]float64{{-u, 0}, {u, 0}}
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		lx := r * math.Cos(theta)
		ly := v + r*math.Sin(theta)
		if e.Kind == Segment && ly <= 0 {
			pts = append(pts, [2]float64{lx, ly})
		} else if e.Kind == Sector && ly >= 0 {
			pts = append(pts, [2]float64{lx, ly})
		}
	}
	return pts
}

// computeBounds for Segment/Sector operates in the semi-local frame, but
// the generic computeBounds above assumes outlinePoints returns
// (u,v)-local coordinates fed through objToWorldPoint (rotate+translate
// only, no further scale). arcCapOutline already returns semi-local
// (rotated-frame) coordinates, which is exactly what objToWorldPoint's
// rotate+translate expects, so no special case is required there.

// IsPointInside reports whether world point (wx, wy) lies inside the
// element's primitive.
func (e *Element) IsPointInside(wx, wy float64) bool {
	switch e.Kind {
	case Rectangle:
		ox, oy := e.worldToObjPoint(wx, wy)
		return ox >= -1 && ox <= 1 && oy >= -1 && oy <= 1
	case Triangle:
		ox, oy := e.worldToObjPoint(wx, wy)
		return oy >= 0 && oy <= 1-ox && oy <= 1+ox
	case Ellipse:
		ox, oy := e.worldToObjPoint(wx, wy)
		return ox*ox+oy*oy <= 1
	case Segment:
		lx, ly := e.worldToSemiLocalPoint(wx, wy)
		r2 := e.U*e.U + e.V*e.V
		return ly <= 0 && lx*lx+(ly-e.V)*(ly-e.V) <= r2
	case Sector:
		lx, ly := e.worldToSemiLocalPoint(wx, wy)
		r2 := e.U*e.U + e.V*e.V
		return ly >= 0 && lx*lx+(ly-e.V)*(ly-e.V) <= r2
	default:
		return false
	}
}

// clipHalfPlane intersects [tmin,tmax] with the constraint a*x(t)+b*y(t)<=c
// along the parametrized line x(t)=x0+t*dx, y(t)=y0+t*dy. Returns ok=false
// if the result is empty.
func clipHalfPlane(tmin, tmax, a, b, c, x0, y0, dx, dy float64) (float64, float64, bool) {
	num := c - (a*x0 + b*y0)
	den := a*dx + b*dy
	const eps = 1e-12
	if math.Abs(den) < eps {
		if num < 0 {
			return tmin, tmax, false
		}
		return tmin, tmax, true
	}
	t := num / den
	if den > 0 {
		if t < tmax {
			tmax = t
		}
	} else {
		if t > tmin {
			tmin = t
		}
	}
	return tmin, tmax, tmin <= tmax
}

// clipCircle intersects [tmin,tmax] with the disk (x(t)-cx)^2+(y(t)-cy)^2<=r2.
func clipCircle(tmin, tmax, cx, cy, r2, x0, y0, dx, dy float64) (float64, float64, bool) {
	fx, fy := x0-cx, y0-cy
	a := dx*dx + dy*dy
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r2
	if a < 1e-18 {
		if c <= 0 {
			return tmin, tmax, true
		}
		return tmin, tmax, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return tmin, tmax, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > tmin {
		tmin = t1
	}
	if t2 < tmax {
		tmax = t2
	}
	return tmin, tmax, tmin <= tmax
}

// clipAABB intersects [tmin,tmax] with the element's world-space bounding
// rectangle (a Liang-Barsky clip against four half-planes).
func (e *Element) clipAABB(tmin, tmax, x0, y0, dx, dy float64) (float64, float64, bool) {
	ok := true
	tmin, tmax, ok = clipHalfPlane(tmin, tmax, -1, 0, -e.XMin, x0, y0, dx, dy)
	if !ok {
		return tmin, tmax, false
	}
	tmin, tmax, ok = clipHalfPlane(tmin, tmax, 1, 0, e.XMax, x0, y0, dx, dy)
	if !ok {
		return tmin, tmax, false
	}
	tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, -1, -e.YMin, x0, y0, dx, dy)
	if !ok {
		return tmin, tmax, false
	}
	tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, 1, e.YMax, x0, y0, dx, dy)
	return tmin, tmax, ok
}

// ClipLineWorldCoords intersects the world-space segment (x1,y1)-(x2,y2)
// with the element, returning the Euclidean length of the intersection (0
// if they don't intersect).
func (e *Element) ClipLineWorldCoords(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	tmin, tmax, ok := e.clipAABB(0, 1, x1, y1, dx, dy)
	if !ok {
		return 0
	}

	// Carry the line into the element's local frame. Point transforms
	// translate; vector (direction) transforms do not.
	var lx0, ly0, ldx, ldy float64
	switch e.Kind {
	case Segment, Sector:
		lx0, ly0 = e.worldToSemiLocalPoint(x1, y1)
		ldx, ldy = e.worldToSemiLocalVector(dx, dy)
	default:
		lx0, ly0 = e.worldToObjPoint(x1, y1)
		ldx, ldy = e.worldToObjVector(dx, dy)
	}

	switch e.Kind {
	case Rectangle:
		tmin, tmax, ok = clipHalfPlane(tmin, tmax, -1, 0, 1, lx0, ly0, ldx, ldy)
		if ok {
			tmin, tmax, ok = clipHalfPlane(tmin, tmax, 1, 0, 1, lx0, ly0, ldx, ldy)
		}
		if ok {
			tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, -1, 1, lx0, ly0, ldx, ldy)
		}
		if ok {
			tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, 1, 1, lx0, ly0, ldx, ldy)
		}
	case Triangle:
		tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, -1, 0, lx0, ly0, ldx, ldy)
		if ok {
			tmin, tmax, ok = clipHalfPlane(tmin, tmax, 1, 1, 1, lx0, ly0, ldx, ldy)
		}
		if ok {
			tmin, tmax, ok = clipHalfPlane(tmin, tmax, -1, 1, 1, lx0, ly0, ldx, ldy)
		}
	case Ellipse:
		tmin, tmax, ok = clipCircle(tmin, tmax, 0, 0, 1, lx0, ly0, ldx, ldy)
	case Segment:
		tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, 1, 0, lx0, ly0, ldx, ldy)
		if ok {
			tmin, tmax, ok = clipCircle(tmin, tmax, 0, e.V, e.U*e.U+e.V*e.V, lx0, ly0, ldx, ldy)
		}
	case Sector:
		tmin, tmax, ok = clipHalfPlane(tmin, tmax, 0, -1, 0, lx0, ly0, ldx, ldy)
		if ok {
			tmin, tmax, ok = clipCircle(tmin, tmax, 0, e.V, e.U*e.U+e.V*e.V, lx0, ly0, ldx, ldy)
		}
	}
	if !ok || tmax <= tmin {
		return 0
	}
	worldLen := math.Hypot(dx, dy)
	return (tmax - tmin) * worldLen
}

// Composition distinguishes the usual element-list phantoms from the
// special unit-pulse phantom.
type Composition int

const (
	PElems Composition = iota
	UnitPulse
)

// Phantom is an ordered list of Elements plus the derived bounding box.
type Phantom struct {
	Elements    []*Element
	Composition Composition
	XMin, XMax  float64
	YMin, YMax  float64
}

func newEmptyPhantom() *Phantom {
	return &Phantom{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
}

// AddElement appends an element (inserted at the front, matching the
// original's push_front, so later insertions are tested first during
// projection) and folds its bounding box into the phantom's.
func (p *Phantom) AddElement(kind Kind, cx, cy, u, v, rotDeg, atten float64) {
	e := NewElement(kind, cx, cy, u, v, rotDeg*math.Pi/180, atten)
	p.Elements = append([]*Element{e}, p.Elements...)
	p.XMin = math.Min(p.XMin, e.XMin)
	p.XMax = math.Max(p.XMax, e.XMax)
	p.YMin = math.Min(p.YMin, e.YMin)
	p.YMax = math.Max(p.YMax, e.YMax)
}

// MaxAxisLength returns the larger of the phantom's width and height.
func (p *Phantom) MaxAxisLength() float64 {
	return math.Max(p.XMax-p.XMin, p.YMax-p.YMin)
}

// DiameterBoundaryCircle is the diameter of the circle bounding the
// phantom, sqrt(2) * the longer axis.
func (p *Phantom) DiameterBoundaryCircle() float64 {
	return math.Sqrt2 * p.MaxAxisLength()
}

// NewByName builds one of the two named standard phantoms. Names are
// matched case-insensitively; "unitpulse" (and "unit-pulse") select the
// degenerate single-impulse phantom used by testable property 7 and
// scenario (e).
func NewByName(name string) (*Phantom, error) {
	switch lower(name) {
	case "shepplogan", "shepp-logan", "shepp_logan":
		return NewSheppLogan(), nil
	case "herman":
		return NewHerman(), nil
	case "unitpulse", "unit-pulse", "unit_pulse":
		return NewUnitPulse(), nil
	default:
		return nil, ctserr.Invalid("unknown phantom name %q", name)
	}
}

// NewUnitPulse builds the degenerate phantom used for point-spread and
// Radon round-trip testing: a large zero-attenuation rectangle holding a
// unit circle of attenuation 1, and the scanner's unit-pulse special case
// additionally forces the raw sinogram to a single central impulse.
func NewUnitPulse() *Phantom {
	p := newEmptyPhantom()
	p.Composition = UnitPulse
	p.AddElement(Rectangle, 0, 0, 100, 100, 0, 0)
	p.AddElement(Ellipse, 0, 0, 1, 1, 0, 1)
	return p
}

// NewSheppLogan builds the standard 11-ellipse Shepp-Logan head phantom,
// with the exact element parameters from the original source.
func NewSheppLogan() *Phantom {
	p := newEmptyPhantom()
	p.Composition = PElems
	type el struct{ cx, cy, u, v, rot, atten float64 }
	els := []el{
		{0.0000, 0.0000, 0.6900, 0.9200, 0.0, 1.00},
		{0.0000, -0.0184, 0.6624, 0.8740, 0.0, -0.98},
		{0.2200, 0.0000, 0.1100, 0.3100, -18.0, -0.02},
		{-0.2200, 0.0000, 0.1600, 0.4100, 18.0, -0.02},
		{0.0000, 0.3500, 0.2100, 0.2500, 0.0, 0.01},
		{0.0000, 0.1000, 0.0460, 0.0460, 0.0, 0.01},
		{0.0000, -0.1000, 0.0460, 0.0460, 0.0, 0.01},
		{-0.0800, -0.6050, 0.0460, 0.0230, 0.0, 0.01},
		{0.0000, -0.6060, 0.0230, 0.0230, 0.0, 0.01},
		{0.0600, -0.6050, 0.0230, 0.0460, 0.0, 0.01},
		{0.5538, -0.3858, 0.0330, 0.2060, -18.0, 0.03},
	}
	for _, e := range els {
		p.AddElement(Ellipse, e.cx, e.cy, e.u, e.v, e.rot, e.atten)
	}
	return p
}

// NewHerman builds the 14-element Herman head phantom.
func NewHerman() *Phantom {
	p := newEmptyPhantom()
	p.Composition = PElems
	p.AddElement(Ellipse, 0, 0, 0.69, 0.92, 90, 2)
	p.AddElement(Ellipse, 0, -0.0184, 0.6624, 0.874, 90, -0.98)
	p.AddElement(Triangle, -0.15, 0.0, 0.20, 0.35, 90, 0.30)
	p.AddElement(Triangle, 0.15, 0.0, 0.20, 0.35, -90+180, 0.30)
	p.AddElement(Ellipse, 0.22, 0.0, 0.11, 0.31, 72, -0.20)
	p.AddElement(Ellipse, -0.22, 0.0, 0.16, 0.41, 108, -0.20)
	p.AddElement(Ellipse, 0.0, 0.35, 0.21, 0.25, 90, 0.20)
	p.AddElement(Ellipse, 0.0, 0.1, 0.046, 0.046, 0, 0.20)
	p.AddElement(Ellipse, 0.0, -0.1, 0.046, 0.046, 0, 0.20)
	p.AddElement(Ellipse, -0.08, -0.605, 0.046, 0.023, 0, 0.20)
	p.AddElement(Ellipse, 0.0, -0.606, 0.023, 0.023, 0, 0.20)
	p.AddElement(Ellipse, 0.06, -0.605, 0.023, 0.046, 0, 0.20)
	p.AddElement(Segment, 0.0, 0.625, 0.20, 0.20, 90, 0.15)
	p.AddElement(Sector, 0.0, -0.86, 0.10, 0.10, 270, 0.15)
	return p
}

// FromDefinition parses a phantom definition file: whitespace-separated
// records of "type cx cy u v rot_deg atten", one per line, '#' comments
// and blank lines skipped, type names case-insensitive.
func FromDefinition(lines []string) (*Phantom, error) {
	p := newEmptyPhantom()
	p.Composition = PElems
	for lineNo, raw := range lines {
		line := trimSpace(raw)
		if line == "" || line[0] == '#' {
			continue
		}
		fields := splitFields(line)
		if len(fields) != 7 {
			return nil, ctserr.Invalid("line %d: want 7 fields, got %d", lineNo+1, len(fields))
		}
		kind, err := ParseKind(fields[0])
		if err != nil {
			return nil, ctserr.Invalid("line %d: %v", lineNo+1, err)
		}
		vals := make([]float64, 6)
		for i := 0; i < 6; i++ {
			v, err := parseFloat(fields[i+1])
			if err != nil {
				return nil, ctserr.Invalid("line %d: field %d: %v", lineNo+1, i+2, err)
			}
			vals[i] = v
		}
		p.AddElement(kind, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	}
	return p, nil
}

// ProjectLine returns the line integral sum(mu_i * intersection length)
// over every element, most recently added first (AddElement prepends);
// overlapping elements simply sum
// (no occlusion).
func ProjectLine(p *Phantom, x1, y1, x2, y2 float64) float64 {
	var sum float64
	for _, e := range p.Elements {
		length := e.ClipLineWorldCoords(x1, y1, x2, y2)
		sum += e.Atten * length
	}
	return sum
}

// Rasterize fills img's real plane with the mean attenuation of an
// nSample x nSample subgrid per pixel, over the extent
// viewRatio * DiameterBoundaryCircle() / sqrt(2), centered on the origin.
func Rasterize(p *Phantom, img *array2d.File, viewRatio float64, nSample int) error {
	if nSample < 1 {
		return ctserr.Invalid("nsample must be >= 1, got %d", nSample)
	}
	nx, ny := img.NX(), img.NY()
	side := viewRatio * p.DiameterBoundaryCircle() / math.Sqrt2
	xmin, xmax := -side/2, side/2
	ymin, ymax := -side/2, side/2
	xinc := (xmax - xmin) / float64(nx)
	yinc := (ymax - ymin) / float64(ny)
	kxinc := xinc / float64(nSample)
	kyinc := yinc / float64(nSample)
	kxofs := kxinc / 2
	kyofs := kyinc / 2

	for ix := 0; ix < nx; ix++ {
		xCenter := xmin + (float64(ix)+0.5)*xinc
		for iy := 0; iy < ny; iy++ {
			yCenter := ymin + (float64(iy)+0.5)*yinc
			var sum float64
			for kx := 0; kx < nSample; kx++ {
				sx := xCenter - xinc/2 + kxofs + float64(kx)*kxinc
				for ky := 0; ky < nSample; ky++ {
					sy := yCenter - yinc/2 + kyofs + float64(ky)*kyinc
					for _, e := range p.Elements {
						if e.IsPointInside(sx, sy) {
							sum += e.Atten
						}
					}
				}
			}
			if nSample > 1 {
				sum /= float64(nSample * nSample)
			}
			img.Set(ix, iy, sum)
		}
	}
	img.Header.SetAxisExtent(xmin, xmax, ymin, ymax)
	img.Header.SetAxisIncrement(xinc, yinc)
	return nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func splitFields(s string) []string {
	var fields []string
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isSpace(s[i]) {
			i++
		}
		if start < i {
			fields = append(fields, s[start:i])
		}
	}
	return fields
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

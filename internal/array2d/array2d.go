// Package array2d implements Array2dFile, the self-describing binary
// container shared by CTSim's image and projection files: a fixed-layout
// header, a column-major pixel plane (with an optional imaginary plane),
// and a trailing sequence of timestamped labels.
package array2d

import (
	"bytes"
	"io"
	"time"

	"github.com/mauriceAlthoff/CTSim-sub000/internal/ctserr"
	"github.com/mauriceAlthoff/CTSim-sub000/internal/netorder"
)

// Pixel formats, matching the original container's enum.
const (
	PixelInvalid = 0
	PixelInt8    = 1
	PixelUint8   = 2
	PixelInt16   = 3
	PixelUint16  = 4
	PixelInt32   = 5
	PixelUint32  = 6
	PixelFloat32 = 7
	PixelFloat64 = 8
)

// Data type tags.
const (
	DataReal    = 1
	DataComplex = 2
)

// Label types.
const (
	LabelEmpty   = 0
	LabelHistory = 1
	LabelUser    = 2
)

// signature is the image file's 16-bit magic 'I'*256 + 'F'. Projection
// files share this same header skeleton but stamp their own signature
// (see internal/projections); EncodeSig/DecodeHeaderSig take the
// signature as a parameter so both callers reuse one encoding.
const signature = 0x4946

// headerSize is the fixed encoded size of Header in bytes. Per the source's
// "check header size after reading" behavior, we record this explicitly
// (REDESIGN FLAG: headerRead must compare against a known constant, not a
// value derived from stream position alone) and use it both to write the
// headersize field and to validate it on read.
const headerSize = 88

// Header is the bit-exact Array2dFile header (network byte order on disk).
type Header struct {
	PixelFormat       uint16
	PixelSize         uint16
	NumFileLabels     uint16
	NX, NY            uint32
	DataType          uint16
	AxisIncrementKnown uint16
	AxisIncrementX    float64
	AxisIncrementY    float64
	AxisExtentKnown   uint16
	MinX, MaxX        float64
	MinY, MaxY        float64
	OffsetPV          float64
	ScalePV           float64
}

// SetAxisExtent assigns the four axis-extent fields distinctly and marks
// the extent known. The original source's setAxisExtent aliased m_maxY to
// minX/maxX through a copy-paste bug (REDESIGN FLAG); this assigns each
// field from its own argument.
func (h *Header) SetAxisExtent(minX, maxX, minY, maxY float64) {
	h.AxisExtentKnown = 1
	h.MinX = minX
	h.MaxX = maxX
	h.MinY = minY
	h.MaxY = maxY
}

// SetAxisIncrement assigns both axis increments and marks them known.
func (h *Header) SetAxisIncrement(incX, incY float64) {
	h.AxisIncrementKnown = 1
	h.AxisIncrementX = incX
	h.AxisIncrementY = incY
}

func (h *Header) encode() []byte { return h.EncodeSig(signature) }

// EncodeSig encodes the header with the given signature word, letting a
// caller outside this package (internal/projections) reuse the exact same
// header layout under its own signature.
func (h *Header) EncodeSig(sig uint16) []byte {
	w := netorder.NewWriter()
	w.U16(0) // headersize placeholder, patched below
	w.U16(sig)
	w.U16(h.PixelFormat)
	w.U16(h.PixelSize)
	w.U16(h.NumFileLabels)
	w.U32(h.NX)
	w.U32(h.NY)
	w.U16(h.DataType)
	w.U16(h.AxisIncrementKnown)
	w.F64(h.AxisIncrementX)
	w.F64(h.AxisIncrementY)
	w.U16(h.AxisExtentKnown)
	w.F64(h.MinX)
	w.F64(h.MaxX)
	w.F64(h.MinY)
	w.F64(h.MaxY)
	w.F64(h.OffsetPV)
	w.F64(h.ScalePV)
	buf := w.Buf()
	buf[0] = byte(headerSize >> 8)
	buf[1] = byte(headerSize)
	return buf
}

func decodeHeader(r *netorder.Reader) (Header, error) { return DecodeHeaderSig(r, signature) }

// DecodeHeaderSig decodes a header written by EncodeSig, checking it
// against the given expected signature word.
func DecodeHeaderSig(r *netorder.Reader, wantSig uint16) (Header, error) {
	var h Header
	declaredSize, err := r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read header size")
	}
	sig, err := r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read signature")
	}
	if sig != wantSig {
		return h, ctserr.Format(nil, "bad signature 0x%04x, want 0x%04x", sig, wantSig)
	}
	h.PixelFormat, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read pixelFormat")
	}
	h.PixelSize, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read pixelSize")
	}
	h.NumFileLabels, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read numFileLabels")
	}
	h.NX, err = r.U32()
	if err != nil {
		return h, ctserr.IO(err, "read nx")
	}
	h.NY, err = r.U32()
	if err != nil {
		return h, ctserr.IO(err, "read ny")
	}
	h.DataType, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read dataType")
	}
	h.AxisIncrementKnown, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read axisIncrementKnown")
	}
	h.AxisIncrementX, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read axisIncrementX")
	}
	h.AxisIncrementY, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read axisIncrementY")
	}
	h.AxisExtentKnown, err = r.U16()
	if err != nil {
		return h, ctserr.IO(err, "read axisExtentKnown")
	}
	h.MinX, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read minX")
	}
	h.MaxX, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read maxX")
	}
	h.MinY, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read minY")
	}
	h.MaxY, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read maxY")
	}
	h.OffsetPV, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read offsetPV")
	}
	h.ScalePV, err = r.F64()
	if err != nil {
		return h, ctserr.IO(err, "read scalePV")
	}
	if int(declaredSize) != headerSize || r.Pos() != headerSize {
		return h, ctserr.Format(nil, "header size mismatch: declared %d, expected %d", declaredSize, headerSize)
	}
	return h, nil
}

// Label is one Array2dFileLabel record: a history or user-provided remark
// with a timestamp.
type Label struct {
	Type                                     uint16
	Year, Month, Day, Hour, Minute, Second   uint16
	CalcTime                                 float64
	Text                                     string
}

// NewHistoryLabel builds a history label stamped with the given time.
func NewHistoryLabel(text string, calcTime float64, t time.Time) Label {
	return Label{
		Type:     LabelHistory,
		Year:     uint16(t.Year()),
		Month:    uint16(t.Month()),
		Day:      uint16(t.Day()),
		Hour:     uint16(t.Hour()),
		Minute:   uint16(t.Minute()),
		Second:   uint16(t.Second()),
		CalcTime: calcTime,
		Text:     text,
	}
}

// Encode serializes the label, for reuse by internal/projections' own
// label list.
func (l Label) Encode() []byte { return l.encode() }

func (l Label) encode() []byte {
	w := netorder.NewWriter()
	w.U16(l.Type)
	w.U16(l.Year)
	w.U16(l.Month)
	w.U16(l.Day)
	w.U16(l.Hour)
	w.U16(l.Minute)
	w.U16(l.Second)
	w.F64(l.CalcTime)
	text := []byte(l.Text)
	w.U16(uint16(len(text)))
	w.Bytes(text)
	return w.Buf()
}

// DecodeLabel decodes a label written by Encode, for reuse by
// internal/projections.
func DecodeLabel(r *netorder.Reader) (Label, error) { return decodeLabel(r) }

func decodeLabel(r *netorder.Reader) (Label, error) {
	var l Label
	var err error
	if l.Type, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label type")
	}
	if l.Year, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label year")
	}
	if l.Month, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label month")
	}
	if l.Day, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label day")
	}
	if l.Hour, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label hour")
	}
	if l.Minute, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label minute")
	}
	if l.Second, err = r.U16(); err != nil {
		return l, ctserr.IO(err, "read label second")
	}
	if l.CalcTime, err = r.F64(); err != nil {
		return l, ctserr.IO(err, "read label calcTime")
	}
	strLen, err := r.U16()
	if err != nil {
		return l, ctserr.IO(err, "read label strLen")
	}
	text, err := r.Bytes(int(strLen))
	if err != nil {
		return l, ctserr.IO(err, "read label text")
	}
	l.Text = string(text)
	return l, nil
}

// File is a generic Array2dFile: a header, a real plane, an optional
// imaginary plane, and an ordered list of labels.
type File struct {
	Header Header
	Real   []float64 // column-major: index = ix*ny + iy
	Imag   []float64 // nil unless Header.DataType == DataComplex
	Labels []Label
}

// New constructs a File with the given dimensions and pixel format. nx and
// ny must both be at least 1.
func New(nx, ny int, complexData bool, pixelFormat uint16, pixelSize uint16) (*File, error) {
	if nx < 1 || ny < 1 {
		return nil, ctserr.Dimension("nx=%d, ny=%d must both be >= 1", nx, ny)
	}
	dataType := uint16(DataReal)
	var imag []float64
	if complexData {
		dataType = DataComplex
		imag = make([]float64, nx*ny)
	}
	return &File{
		Header: Header{
			PixelFormat: pixelFormat,
			PixelSize:   pixelSize,
			NX:          uint32(nx),
			NY:          uint32(ny),
			DataType:    dataType,
		},
		Real: make([]float64, nx*ny),
		Imag: imag,
	}, nil
}

// NX and NY report the plane dimensions.
func (f *File) NX() int { return int(f.Header.NX) }
func (f *File) NY() int { return int(f.Header.NY) }

// IsComplex reports whether the file carries an imaginary plane.
func (f *File) IsComplex() bool { return f.Header.DataType == DataComplex }

func (f *File) index(ix, iy int) int { return ix*f.NY() + iy }

// At returns the real-plane sample at (ix, iy).
func (f *File) At(ix, iy int) float64 { return f.Real[f.index(ix, iy)] }

// Set assigns the real-plane sample at (ix, iy).
func (f *File) Set(ix, iy int, v float64) { f.Real[f.index(ix, iy)] = v }

// AtImag returns the imaginary-plane sample at (ix, iy), or 0 if the file
// has no imaginary plane.
func (f *File) AtImag(ix, iy int) float64 {
	if f.Imag == nil {
		return 0
	}
	return f.Imag[f.index(ix, iy)]
}

// SetImag assigns the imaginary-plane sample at (ix, iy), allocating the
// plane (and marking the file complex) on first use.
func (f *File) SetImag(ix, iy int, v float64) {
	if f.Imag == nil {
		f.Imag = make([]float64, f.NX()*f.NY())
		f.Header.DataType = DataComplex
	}
	f.Imag[f.index(ix, iy)] = v
}

// ClearReal zeroes the real plane.
func (f *File) ClearReal() {
	for i := range f.Real {
		f.Real[i] = 0
	}
}

// ClearImaginary zeroes the imaginary plane. The original source zeroed
// the imaginary array using the real array's pointer (a copy-paste bug,
// REDESIGN FLAG); this zeroes the correct plane and is a no-op if the file
// carries no imaginary plane.
func (f *File) ClearImaginary() {
	for i := range f.Imag {
		f.Imag[i] = 0
	}
}

// AddLabel appends a label in insertion order.
func (f *File) AddLabel(l Label) {
	f.Labels = append(f.Labels, l)
	f.Header.NumFileLabels = uint16(len(f.Labels))
}

// Write serializes the file (header, real plane, optional imaginary plane,
// labels) to w in network byte order.
func (f *File) Write(w io.Writer) error {
	nx, ny := f.NX(), f.NY()
	if len(f.Real) != nx*ny {
		return ctserr.Dimension("real plane has %d samples, want %d", len(f.Real), nx*ny)
	}
	f.Header.NX = uint32(nx)
	f.Header.NY = uint32(ny)
	f.Header.NumFileLabels = uint16(len(f.Labels))
	if _, err := w.Write(f.Header.encode()); err != nil {
		return ctserr.IO(err, "write header")
	}
	nw := netorder.NewWriter()
	for _, v := range f.Real {
		nw.F64(v)
	}
	if f.IsComplex() {
		if len(f.Imag) != nx*ny {
			return ctserr.Dimension("imaginary plane has %d samples, want %d", len(f.Imag), nx*ny)
		}
		for _, v := range f.Imag {
			nw.F64(v)
		}
	}
	if _, err := w.Write(nw.Buf()); err != nil {
		return ctserr.IO(err, "write pixel plane")
	}
	lw := netorder.NewWriter()
	for _, l := range f.Labels {
		lw.Bytes(l.encode())
	}
	if _, err := w.Write(lw.Buf()); err != nil {
		return ctserr.IO(err, "write labels")
	}
	return nil
}

// Read deserializes a File from r.
func Read(r io.Reader) (*File, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, ctserr.IO(err, "read file")
	}
	nr := netorder.NewReader(all)
	hdr, err := decodeHeader(nr)
	if err != nil {
		return nil, err
	}
	if hdr.PixelFormat != PixelFloat64 {
		return nil, ctserr.Format(nil, "unsupported pixel format %d", hdr.PixelFormat)
	}
	nx, ny := int(hdr.NX), int(hdr.NY)
	if nx < 1 || ny < 1 {
		return nil, ctserr.Dimension("file declares nx=%d, ny=%d", nx, ny)
	}
	n := nx * ny
	real := make([]float64, n)
	for i := range real {
		v, err := nr.F64()
		if err != nil {
			return nil, ctserr.Format(err, "truncated real plane at sample %d", i)
		}
		real[i] = v
	}
	var imag []float64
	if hdr.DataType == DataComplex {
		imag = make([]float64, n)
		for i := range imag {
			v, err := nr.F64()
			if err != nil {
				return nil, ctserr.Format(err, "truncated imaginary plane at sample %d", i)
			}
			imag[i] = v
		}
	}
	labels := make([]Label, 0, hdr.NumFileLabels)
	for i := 0; i < int(hdr.NumFileLabels); i++ {
		l, err := decodeLabel(nr)
		if err != nil {
			return nil, ctserr.Format(err, "truncated label %d", i)
		}
		labels = append(labels, l)
	}
	return &File{Header: hdr, Real: real, Imag: imag, Labels: labels}, nil
}

// Bytes serializes the file into an in-memory buffer; a convenience
// wrapper over Write for callers that don't need streaming I/O.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

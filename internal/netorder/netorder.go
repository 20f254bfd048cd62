// Package netorder provides endian-correct binary I/O of the fixed-width
// integer and IEEE float primitives CTSim's on-disk formats are built from.
// The wire order is always big-endian ("network order"), independent of the
// host's native byte order.
package netorder

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer accumulates big-endian fields into an in-memory buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with an empty buffer.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) F64(v float64) {
	w.U64(math.Float64bits(v))
}

func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// Bytes appends raw bytes (used for label text, which carries no NUL
// terminator on disk).
func (w *Writer) Bytes(b []byte) { w.buf = append(w.buf, b...) }

// Len reports the number of bytes accumulated so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteTo writes the accumulated buffer to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	return int64(n), err
}

// Buf returns the accumulated buffer. It is named Buf because Bytes is
// already the method that appends raw bytes.
func (w *Writer) Buf() []byte { return w.buf }

// Reader consumes big-endian fields from an in-memory buffer, tracking
// position so callers can compare bytes consumed against an expected size.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential big-endian decoding.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Pos reports the number of bytes consumed so far.
func (r *Reader) Pos() int { return r.pos }

// Remaining reports the number of unconsumed bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.need(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.need(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) U64() (uint64, error) {
	b, err := r.need(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) F64() (float64, error) {
	u, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (r *Reader) F32() (float32, error) {
	u, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.need(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

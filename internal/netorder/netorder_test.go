package netorder

import "testing"

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.U16(0x4946)
	w.U32(123456789)
	w.F64(3.14159265358979)
	w.F32(2.5)
	w.Bytes([]byte("hello"))

	r := NewReader(w.Buf())
	if v, err := r.U16(); err != nil || v != 0x4946 {
		t.Fatalf("U16 = %v, %v", v, err)
	}
	if v, err := r.U32(); err != nil || v != 123456789 {
		t.Fatalf("U32 = %v, %v", v, err)
	}
	if v, err := r.F64(); err != nil || v != 3.14159265358979 {
		t.Fatalf("F64 = %v, %v", v, err)
	}
	if v, err := r.F32(); err != nil || v != 2.5 {
		t.Fatalf("F32 = %v, %v", v, err)
	}
	b, err := r.Bytes(5)
	if err != nil || string(b) != "hello" {
		t.Fatalf("Bytes = %q, %v", b, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", r.Remaining())
	}
}

func TestTruncatedReadFails(t *testing.T) {
	r := NewReader([]byte{0x00})
	if _, err := r.U16(); err == nil {
		t.Fatal("expected error reading U16 from 1 byte")
	}
}

package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// sliceWriterAt wraps a byte slice to implement io.WriterAt.
type sliceWriterAt struct {
	buf []byte
}

func (s *sliceWriterAt) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(s.buf) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	return copy(s.buf[off:], p), nil
}

func TestWriterLittleEndian(t *testing.T) {
	dst := &sliceWriterAt{}
	w := NewWriter(dst, binary.LittleEndian)

	if err := w.WriteInt32(348); err != nil {
		t.Fatalf("WriteInt32 failed: %v", err)
	}
	if err := w.WriteInt16(-2); err != nil {
		t.Fatalf("WriteInt16 failed: %v", err)
	}

	want := []byte{0x5C, 0x01, 0x00, 0x00, 0xFE, 0xFF}
	if !bytes.Equal(dst.buf, want) {
		t.Errorf("wrote % x, want % x", dst.buf, want)
	}
	if w.Pos() != 6 {
		t.Errorf("expected pos 6, got %d", w.Pos())
	}
}

func TestWriterBigEndianInt16s(t *testing.T) {
	dst := &sliceWriterAt{}
	w := NewWriter(dst, binary.BigEndian)

	if err := w.WriteInt16s([]int16{1, -1, 256}); err != nil {
		t.Fatalf("WriteInt16s failed: %v", err)
	}

	want := []byte{0x00, 0x01, 0xFF, 0xFF, 0x01, 0x00}
	if !bytes.Equal(dst.buf, want) {
		t.Errorf("wrote % x, want % x", dst.buf, want)
	}
}

func TestWriterFloat32(t *testing.T) {
	dst := &sliceWriterAt{}
	w := NewWriter(dst, binary.LittleEndian)

	if err := w.WriteFloat32(1.0); err != nil {
		t.Fatalf("WriteFloat32 failed: %v", err)
	}

	want := []byte{0x00, 0x00, 0x80, 0x3F}
	if !bytes.Equal(dst.buf, want) {
		t.Errorf("wrote % x, want % x", dst.buf, want)
	}
}

func TestWriterAtAndPad(t *testing.T) {
	dst := &sliceWriterAt{}
	w := NewWriter(dst, binary.LittleEndian)

	if err := w.Pad(4); err != nil {
		t.Fatalf("Pad failed: %v", err)
	}
	if err := w.At(2).WriteInt16(0x0102); err != nil {
		t.Fatalf("WriteInt16 failed: %v", err)
	}

	want := []byte{0x00, 0x00, 0x02, 0x01}
	if !bytes.Equal(dst.buf, want) {
		t.Errorf("wrote % x, want % x", dst.buf, want)
	}
}

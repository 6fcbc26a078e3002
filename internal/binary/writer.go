package binary

import (
	"encoding/binary"
	"io"
	"math"
)

// Byte orders accepted by NewWriter, re-exported so callers do not need a
// second binary import.
var (
	BigEndian    = binary.BigEndian
	LittleEndian = binary.LittleEndian
)

// Writer provides methods for writing fixed-width fields in a configurable
// byte order.
type Writer struct {
	w     io.WriterAt
	order binary.ByteOrder
	pos   int64
}

// NewWriter creates a writer with the given byte order.
func NewWriter(w io.WriterAt, order binary.ByteOrder) *Writer {
	return &Writer{w: w, order: order}
}

// At returns a new writer positioned at the given offset.
// The new writer shares the underlying io.WriterAt but has independent position.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{w: w.w, order: w.order, pos: offset}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// WriteInt16 writes a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error {
	buf := make([]byte, 2)
	w.order.PutUint16(buf, uint16(v))
	return w.WriteBytes(buf)
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, uint32(v))
	return w.WriteBytes(buf)
}

// WriteFloat32 writes an IEEE 754 single-precision float.
func (w *Writer) WriteFloat32(v float32) error {
	buf := make([]byte, 4)
	w.order.PutUint32(buf, math.Float32bits(v))
	return w.WriteBytes(buf)
}

// WriteInt16s writes consecutive signed 16-bit integers.
func (w *Writer) WriteInt16s(vs []int16) error {
	buf := make([]byte, 2*len(vs))
	for i, v := range vs {
		w.order.PutUint16(buf[2*i:], uint16(v))
	}
	return w.WriteBytes(buf)
}

// Pad writes n zero bytes.
func (w *Writer) Pad(n int) error {
	return w.WriteBytes(make([]byte, n))
}

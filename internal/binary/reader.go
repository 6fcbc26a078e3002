// Package binary provides low-level binary I/O for UNC file parsing and
// NIfTI export. UNC fields are big-endian; the writer takes a configurable
// byte order because NIfTI-1 headers are written little-endian.
package binary

import (
	"encoding/binary"
	"io"
)

// Reader provides methods for reading fixed-width big-endian fields from a
// finite byte source. Every read is bounds-checked against the source size;
// a read past the end returns io.ErrUnexpectedEOF rather than a short
// result.
type Reader struct {
	r    io.ReaderAt
	size int64
	pos  int64
}

// NewReader creates a reader over r, which holds size bytes.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{r: r, size: size}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{r: r.r, size: r.size, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the total size of the underlying source in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes between the current position and
// the end of the source.
func (r *Reader) Remaining() int64 {
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// InBounds reports whether offset lies within the source.
func (r *Reader) InBounds(offset int64) bool {
	return offset >= 0 && offset < r.size
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if r.pos < 0 || r.pos+int64(n) > r.size {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(io.NewSectionReader(r.r, r.pos, int64(n)), buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadInt32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}

// ReadInt32s reads n consecutive big-endian signed 32-bit integers.
func (r *Reader) ReadInt32s(n int) ([]int32, error) {
	buf, err := r.ReadBytes(4 * n)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(buf[4*i:]))
	}
	return out, nil
}

// ReadInt16s reads n consecutive big-endian signed 16-bit integers.
func (r *Reader) ReadInt16s(n int) ([]int16, error) {
	buf, err := r.ReadBytes(2 * n)
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(buf[2*i:]))
	}
	return out, nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}

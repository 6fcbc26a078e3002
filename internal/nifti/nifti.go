// Package nifti writes int16 volumes as single-file NIfTI-1 images
// (.nii or gzipped .nii.gz, little-endian, data at byte 352). It
// implements just enough of the format for exporting decoded UNC
// volumes; reading NIfTI is out of scope.
package nifti

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mriformats/go-unc/internal/binary"
)

const (
	headerSize = 348
	voxOffset  = 352

	dtInt16 = 4  // NIfTI datatype code for int16
	unitsMM = 2  // xyzt_units: spatial units in millimetres
	bitpix  = 16 // bits per sample
)

// Image is one volume to be written. Shape is slowest-axis first (the
// slice axis outermost), matching row-major sample order in Data; the
// fastest-varying axis becomes the NIfTI x axis.
type Image struct {
	Shape []int

	// PixDim is the spatial sample spacing in mm, x/y/z order. Missing
	// entries default to 1.
	PixDim []float64

	// Descrip goes into the 80-byte descrip field, truncated as needed.
	Descrip string

	// SclSlope and SclInter map stored values to real values; a zero
	// slope means unscaled.
	SclSlope float64
	SclInter float64

	Data []int16
}

// WriteFile writes img as a .nii file at path. A path ending in ".gz"
// gets gzip-compressed output.
func WriteFile(path string, img *Image) error {
	var buf bufferAt
	if err := Write(&buf, img); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(buf.data); err != nil {
			f.Close()
			return fmt.Errorf("compressing image: %w", err)
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("compressing image: %w", err)
		}
	} else if _, err := f.Write(buf.data); err != nil {
		f.Close()
		return fmt.Errorf("writing image: %w", err)
	}
	return f.Close()
}

// bufferAt is a growable in-memory io.WriterAt, used to render the image
// before it is streamed through gzip.
type bufferAt struct {
	data []byte
}

func (b *bufferAt) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}
	return copy(b.data[off:], p), nil
}

// Write writes img to w in single-file NIfTI-1 layout.
func Write(w io.WriterAt, img *Image) error {
	rank := len(img.Shape)
	if rank < 1 || rank > 7 {
		return fmt.Errorf("rank %d outside 1..7", rank)
	}
	count := 1
	for _, d := range img.Shape {
		count *= d
	}
	if count != len(img.Data) {
		return fmt.Errorf("shape %v wants %d samples, have %d", img.Shape, count, len(img.Data))
	}

	// dim[0] is the rank; dim[1..] are extents, fastest-varying first,
	// unused entries 1.
	dim := make([]int16, 8)
	dim[0] = int16(rank)
	for i := 1; i < 8; i++ {
		dim[i] = 1
	}
	for i, d := range img.Shape {
		dim[rank-i] = int16(d)
	}

	pixdim := make([]float32, 8)
	pixdim[0] = 1
	for i := 1; i < 8; i++ {
		pixdim[i] = 1
		if i-1 < len(img.PixDim) && img.PixDim[i-1] > 0 {
			pixdim[i] = float32(img.PixDim[i-1])
		}
	}

	bw := binary.NewWriter(w, binary.LittleEndian)
	writes := []func() error{
		func() error { return bw.WriteInt32(headerSize) },
		func() error { return bw.Pad(36) }, // data_type, db_name, extents, session_error, regular, dim_info
		func() error { return bw.WriteInt16s(dim) },
		func() error { return bw.Pad(14) }, // intent_p1..p3, intent_code
		func() error { return bw.WriteInt16(dtInt16) },
		func() error { return bw.WriteInt16(bitpix) },
		func() error { return bw.WriteInt16(0) }, // slice_start
		func() error {
			for _, p := range pixdim {
				if err := bw.WriteFloat32(p); err != nil {
					return err
				}
			}
			return nil
		},
		func() error { return bw.WriteFloat32(voxOffset) },
		func() error { return bw.WriteFloat32(float32(img.SclSlope)) },
		func() error { return bw.WriteFloat32(float32(img.SclInter)) },
		func() error { return bw.WriteInt16(0) },                  // slice_end
		func() error { return bw.WriteBytes([]byte{0, unitsMM}) }, // slice_code, xyzt_units
		func() error { return bw.Pad(24) },                        // cal_max..toffset, glmax, glmin
		func() error { return bw.WriteBytes(fixedText(img.Descrip, 80)) },
		func() error { return bw.Pad(24) }, // aux_file
		func() error { return bw.Pad(4) },  // qform_code, sform_code
		func() error { return bw.Pad(72) }, // quaternions, offsets, srows
		func() error { return bw.Pad(16) }, // intent_name
		func() error { return bw.WriteBytes([]byte{'n', '+', '1', 0}) },
		func() error { return bw.Pad(4) }, // no header extensions
	}
	for _, wf := range writes {
		if err := wf(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if bw.Pos() != voxOffset {
		return fmt.Errorf("header layout error: ended at %d, want %d", bw.Pos(), voxOffset)
	}
	if err := bw.WriteInt16s(img.Data); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// fixedText lays s out in a zero-padded field of n bytes.
func fixedText(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)
	return buf
}

package unc

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mriformats/go-unc/internal/binary"
)

// File is a fully decoded UNC image. A File is built atomically by Open or
// Decode and is not modified afterwards; SplitEchoes and SplitVolumes
// return new File values instead of mutating the receiver.
type File struct {
	// Title is the free-text title, at most 80 visible characters.
	Title string

	// ValidMaxMin reports whether Min and Max were recorded by the writer.
	ValidMaxMin bool
	Min, Max    int32

	// ValidHistogram reports whether Histogram was recorded by the writer.
	// Histogram always holds exactly 1024 bins either way.
	ValidHistogram bool
	Histogram      []int32

	PixelFormat PixelFormat

	// DimCount is the rank of the pixel array, 0..10. DimVector holds the
	// per-axis extents; only the first DimCount entries are meaningful and
	// DimVector[0] is the slice count.
	DimCount  int
	DimVector [maxDims]int32

	// Pixels is the reshaped pixel volume, slice axis outermost.
	Pixels *Volume

	// Header is the global metadata record; SliceInfo holds one record per
	// slice, sorted ascending by slice location.
	Header    *Header
	SliceInfo []*SliceHeader

	addresses [numSections]int64
}

// Open decodes the UNC file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	return Decode(f, fi.Size())
}

// Decode decodes a UNC image from r, which holds size bytes. The source
// must be randomly addressable; sections are read at the absolute offsets
// named by the address table regardless of their order in the file.
func Decode(r io.ReaderAt, size int64) (*File, error) {
	br := binary.NewReader(r, size)
	f := &File{}

	addrs, err := readAddresses(br)
	if err != nil {
		return nil, err
	}
	f.addresses = addrs

	for _, fs := range fixedSections {
		if err := f.decodeSection(br, fs); err != nil {
			return nil, fmt.Errorf("%s section: %w", fs.sec, err)
		}
	}
	if err := f.decodePixels(br); err != nil {
		return nil, fmt.Errorf("pixels section: %w", err)
	}
	if err := f.decodeInfo(br); err != nil {
		return nil, fmt.Errorf("info section: %w", err)
	}
	return f, nil
}

// decodeSection positions a reader on one fixed-width section and applies
// its decode func.
func (f *File) decodeSection(r *binary.Reader, fs sectionField) error {
	addr := f.addresses[fs.sec]
	if !r.InBounds(addr) {
		return fmt.Errorf("address %d outside file of %d bytes: %w", addr, r.Size(), ErrDecode)
	}
	sr := r.At(addr)
	if sr.Remaining() < int64(fs.size) {
		return fmt.Errorf("need %d bytes at offset %d: %w", fs.size, addr, ErrTruncated)
	}
	return fs.decode(f, sr)
}

func (f *File) decodeTitle(r *binary.Reader) error {
	buf, err := r.ReadBytes(titleSize)
	if err != nil {
		return fmt.Errorf("reading title: %w", ErrTruncated)
	}
	s, _, _ := strings.Cut(string(buf), "\x00")
	if len(s) > titleSize-1 {
		// No terminator in the 81-byte field; at most 80 visible chars.
		s = s[:titleSize-1]
	}
	if !isASCII(s) {
		return fmt.Errorf("title is not valid ASCII: %w", ErrDecode)
	}
	f.Title = s
	return nil
}

func (f *File) decodeMaxMin(r *binary.Reader) error {
	vals, err := r.ReadInt32s(3)
	if err != nil {
		return fmt.Errorf("reading max/min: %w", ErrTruncated)
	}
	f.ValidMaxMin = vals[0] == 1
	f.Min, f.Max = vals[1], vals[2]
	return nil
}

func (f *File) decodeHistogram(r *binary.Reader) error {
	flag, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading histogram flag: %w", ErrTruncated)
	}
	bins, err := r.ReadInt32s(histogramBins)
	if err != nil {
		return fmt.Errorf("reading histogram bins: %w", ErrTruncated)
	}
	f.ValidHistogram = flag == 1
	f.Histogram = bins
	return nil
}

func (f *File) decodePixelFormat(r *binary.Reader) error {
	v, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading pixel format: %w", ErrTruncated)
	}
	f.PixelFormat = PixelFormat(v)
	return nil
}

func (f *File) decodeDimCount(r *binary.Reader) error {
	v, err := r.ReadInt32()
	if err != nil {
		return fmt.Errorf("reading dim count: %w", ErrTruncated)
	}
	if v < 0 || v > maxDims {
		return fmt.Errorf("dim count %d outside 0..%d: %w", v, maxDims, ErrDecode)
	}
	f.DimCount = int(v)
	return nil
}

func (f *File) decodeDimVector(r *binary.Reader) error {
	vals, err := r.ReadInt32s(maxDims)
	if err != nil {
		return fmt.Errorf("reading dim vector: %w", ErrTruncated)
	}
	copy(f.DimVector[:], vals)
	return nil
}

// PixelCount returns the product of the first DimCount dimension extents.
// A rank-0 file yields 1 (a degenerate scalar; callers must guard).
func (f *File) PixelCount() int {
	count := 1
	for i := 0; i < f.DimCount; i++ {
		count *= int(f.DimVector[i])
	}
	return count
}

// NumSlices returns the number of 2-D frames along the outermost axis.
func (f *File) NumSlices() int {
	if f.DimCount < 1 {
		return 0
	}
	return int(f.DimVector[0])
}

func (f *File) decodePixels(r *binary.Reader) error {
	addr := f.addresses[secPixels]
	if !r.InBounds(addr) {
		return fmt.Errorf("address %d outside file of %d bytes: %w", addr, r.Size(), ErrDecode)
	}
	sr := r.At(addr)

	// The extent product is bounded by the samples left in the file at
	// every step, so a crafted dimension vector cannot overflow the count.
	limit := sr.Remaining() / 2
	shape := make([]int, f.DimCount)
	count := int64(1)
	for i := range shape {
		d := int64(f.DimVector[i])
		if d < 0 {
			return fmt.Errorf("negative extent %d on axis %d: %w", d, i, ErrDecode)
		}
		if d > 0 && count > limit/d {
			return fmt.Errorf("extents %v exceed the %d samples at offset %d: %w",
				f.DimVector[:f.DimCount], limit, addr, ErrTruncated)
		}
		count *= d
		shape[i] = int(d)
	}
	samples, err := sr.ReadInt16s(int(count))
	if err != nil {
		return fmt.Errorf("reading sample stream: %w", ErrTruncated)
	}
	f.Pixels = newVolume(shape, samples)
	return nil
}

func (f *File) decodeInfo(r *binary.Reader) error {
	addr := f.addresses[secInfo]
	if addr < 0 || addr > r.Size() {
		return fmt.Errorf("address %d outside file of %d bytes: %w", addr, r.Size(), ErrDecode)
	}
	buf, err := r.At(addr).ReadBytes(int(r.Size() - addr))
	if err != nil {
		return fmt.Errorf("reading info text: %w", ErrTruncated)
	}
	if !isASCII(string(buf)) {
		return fmt.Errorf("info text is not valid ASCII: %w", ErrDecode)
	}

	var records []string
	for _, rec := range strings.Split(string(buf), "\x00") {
		if rec != "" {
			records = append(records, rec)
		}
	}

	n := f.NumSlices()
	if len(records) < 1+n {
		return fmt.Errorf("%d info records for %d slices, need %d: %w",
			len(records), n, 1+n, ErrInconsistentMetadata)
	}

	f.Header = ParseHeader(records[0])
	f.SliceInfo = make([]*SliceHeader, n)
	for i := 0; i < n; i++ {
		f.SliceInfo[i] = ParseSliceHeader(records[1+i])
	}
	sortSlices(f.SliceInfo)
	return nil
}

// sortSlices orders slice records ascending by slice location. Records with
// no parseable location sort first; ties keep their relative order.
func sortSlices(slices []*SliceHeader) {
	sort.SliceStable(slices, func(i, j int) bool {
		a, b := slices[i], slices[j]
		if !a.HasSliceLocation || !b.HasSliceLocation {
			return !a.HasSliceLocation && b.HasSliceLocation
		}
		return a.SliceLocation < b.SliceLocation
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

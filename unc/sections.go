package unc

import (
	"fmt"

	"github.com/mriformats/go-unc/internal/binary"
)

// section identifies one entry of the address table at the start of a UNC
// file. The constants are in address-table order.
type section int

const (
	secMaxMin section = iota
	secHistogram
	secTitle
	secPixelFormat
	secDimCount
	secDimVector
	secPixels
	secInfo
	secVersion
	numSections
)

var sectionNames = [numSections]string{
	"max/min", "histogram", "title", "pixel format",
	"dim count", "dim vector", "pixels", "info", "version",
}

func (s section) String() string {
	if s < 0 || s >= numSections {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// Fixed field sizes in bytes.
const (
	titleSize     = 81
	histogramBins = 1024
	maxDims       = 10
)

// readAddresses reads the 9-entry offset directory at byte 0.
func readAddresses(r *binary.Reader) ([numSections]int64, error) {
	var addrs [numSections]int64
	vals, err := r.At(0).ReadInt32s(int(numSections))
	if err != nil {
		return addrs, fmt.Errorf("address table needs %d bytes: %w", 4*numSections, ErrTruncated)
	}
	for i, v := range vals {
		addrs[i] = int64(v)
	}
	return addrs, nil
}

// sectionField describes one fixed-width section: where its offset lives in
// the address table, how many bytes it occupies, and how to decode it. The
// decoder iterates fixedSections instead of hard-coding one read sequence
// per section.
type sectionField struct {
	sec    section
	size   int
	decode func(*File, *binary.Reader) error
}

var fixedSections = []sectionField{
	{secTitle, titleSize, (*File).decodeTitle},
	{secMaxMin, 4 + 8, (*File).decodeMaxMin},
	{secHistogram, 4 + 4*histogramBins, (*File).decodeHistogram},
	{secPixelFormat, 4, (*File).decodePixelFormat},
	{secDimCount, 4, (*File).decodeDimCount},
	{secDimVector, 4 * maxDims, (*File).decodeDimVector},
}

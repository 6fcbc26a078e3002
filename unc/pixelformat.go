package unc

import (
	"fmt"
	"strings"
)

// PixelFormat is the bit-flag pixel format code: a storage class
// (GREY/COLOR/COLORPACKED/USERPACKED) combined with a sample type
// (BYTE/SHORT/LONG/REAL/COMPLEX) in the low octal digit.
type PixelFormat int32

const (
	FormatByte    PixelFormat = 0o001
	FormatShort   PixelFormat = 0o002
	FormatLong    PixelFormat = 0o003
	FormatReal    PixelFormat = 0o004
	FormatComplex PixelFormat = 0o005

	FormatGrey        PixelFormat = 0o010
	FormatColor       PixelFormat = 0o020
	FormatColorPacked PixelFormat = 0o040
	FormatUserPacked  PixelFormat = 0o200
)

// Sample returns the sample-type part of the format code.
func (p PixelFormat) Sample() PixelFormat {
	return p & 0o007
}

// Class returns the storage-class flags of the format code.
func (p PixelFormat) Class() PixelFormat {
	return p &^ 0o007
}

var sampleNames = map[PixelFormat]string{
	FormatByte:    "BYTE",
	FormatShort:   "SHORT",
	FormatLong:    "LONG",
	FormatReal:    "REAL",
	FormatComplex: "COMPLEX",
}

var classNames = []struct {
	flag PixelFormat
	name string
}{
	{FormatGrey, "GREY"},
	{FormatColor, "COLOR"},
	{FormatColorPacked, "COLORPACKED"},
	{FormatUserPacked, "USERPACKED"},
}

func (p PixelFormat) String() string {
	var parts []string
	for _, c := range classNames {
		if p&c.flag != 0 {
			parts = append(parts, c.name)
		}
	}
	if name, ok := sampleNames[p.Sample()]; ok {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("PixelFormat(%#o)", int32(p))
	}
	return strings.Join(parts, "|")
}

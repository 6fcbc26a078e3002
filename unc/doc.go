// Package unc reads the legacy UNC fixed-layout binary container used to
// store multi-slice MRI pixel data plus per-slice textual metadata.
//
// A UNC file starts with a 9-entry address table: big-endian 32-bit offsets
// locating each section (title, max/min, histogram, pixel format, dimension
// count, dimension vector, pixel stream, info text, version). Sections are
// independently offset and need not appear in table order. The pixel stream
// is a flat sequence of big-endian int16 samples reshaped row-major with
// the slice axis outermost; the trailing info section is NUL-delimited
// ASCII text holding one global header record followed by one record per
// slice.
//
// Decoding is all-or-nothing:
//
//	f, err := unc.Open("scan.unc")
//	if err != nil { ... }
//	fmt.Println(f.Title, f.Pixels.Shape())
//
// Files holding several interleaved acquisitions can be repartitioned with
// [File.SplitEchoes] and [File.SplitVolumes]; both return fresh File values
// that share the global header and dimension metadata of the original.
package unc

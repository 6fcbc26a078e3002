package unc

import "errors"

// Common errors. Decode failures wrap one of these; callers test with
// errors.Is.
var (
	// ErrTruncated reports that the file ends before a fixed-width field
	// or the pixel stream is complete.
	ErrTruncated = errors.New("truncated input")

	// ErrDecode reports bytes that cannot be decoded: text that is not
	// ASCII, a section address outside the file, or a dimension count
	// outside 0..10.
	ErrDecode = errors.New("decode error")

	// ErrInconsistentMetadata reports an info section with too few
	// records, or a partition precondition that does not hold.
	ErrInconsistentMetadata = errors.New("inconsistent metadata")
)

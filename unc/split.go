package unc

import "fmt"

// NumEchoes returns the number of distinct Echo Number values across the
// slice records. Records without the field count as echo 0.
func (f *File) NumEchoes() int {
	return len(f.echoNumbers())
}

func (f *File) echoNumbers() map[int]struct{} {
	set := make(map[int]struct{}, 2)
	for _, s := range f.SliceInfo {
		set[s.EchoNumber()] = struct{}{}
	}
	return set
}

// derive builds a partition result from a pixel subset and a metadata
// subset. The result shares the global header and dimension metadata of f;
// max/min and histogram describe the whole original volume and are not
// carried over (their validity flags are false).
func (f *File) derive(pixels *Volume, info []*SliceHeader) *File {
	return &File{
		Title:       f.Title,
		PixelFormat: f.PixelFormat,
		DimCount:    f.DimCount,
		DimVector:   f.DimVector,
		Histogram:   make([]int32, histogramBins),
		Pixels:      pixels,
		Header:      f.Header,
		SliceInfo:   info,
		addresses:   f.addresses,
	}
}

// SplitEchoes partitions a multi-echo file into one File per echo. Echo n
// (1-based) receives the contiguous frame range [(n-1)*k, n*k) of the pixel
// volume, where k = slices / NumEchoes(), together with the slice records
// whose Echo Number is n.
//
// The slice count must divide evenly by the echo count and the observed
// Echo Number values must be exactly 1..NumEchoes(); otherwise
// ErrInconsistentMetadata is returned.
func (f *File) SplitEchoes() ([]*File, error) {
	if f.Pixels == nil || f.Pixels.Rank() < 1 {
		return nil, fmt.Errorf("no slice axis to split: %w", ErrInconsistentMetadata)
	}
	n := f.NumEchoes()
	if n == 0 {
		return nil, fmt.Errorf("no slice metadata: %w", ErrInconsistentMetadata)
	}
	set := f.echoNumbers()
	for e := 1; e <= n; e++ {
		if _, ok := set[e]; !ok {
			return nil, fmt.Errorf("echo numbers are not contiguous 1..%d: %w", n, ErrInconsistentMetadata)
		}
	}
	total := f.Pixels.Shape()[0]
	if total%n != 0 {
		return nil, fmt.Errorf("%d slices do not divide into %d echoes: %w", total, n, ErrInconsistentMetadata)
	}

	per := total / n
	out := make([]*File, 0, n)
	for e := 1; e <= n; e++ {
		var info []*SliceHeader
		for _, s := range f.SliceInfo {
			if s.EchoNumber() == e {
				info = append(info, s)
			}
		}
		out = append(out, f.derive(f.Pixels.Slab((e-1)*per, e*per), info))
	}
	return out, nil
}

// SplitVolumes partitions the file into nVols sub-volumes of consecutive
// frames. Sub-volume n receives the frame range [n*k, (n+1)*k) of the pixel
// volume, k = slices / nVols, and the matching contiguous run of slice
// records, so pixels and metadata of a result always describe the same
// slices.
//
// The slice count must divide evenly by nVols and the slice records must
// cover every frame; otherwise ErrInconsistentMetadata is returned.
func (f *File) SplitVolumes(nVols int) ([]*File, error) {
	if f.Pixels == nil || f.Pixels.Rank() < 1 {
		return nil, fmt.Errorf("no slice axis to split: %w", ErrInconsistentMetadata)
	}
	if nVols < 1 {
		return nil, fmt.Errorf("volume count %d is not positive: %w", nVols, ErrInconsistentMetadata)
	}
	total := f.Pixels.Shape()[0]
	if total%nVols != 0 {
		return nil, fmt.Errorf("%d slices do not divide into %d volumes: %w", total, nVols, ErrInconsistentMetadata)
	}
	if len(f.SliceInfo) != total {
		return nil, fmt.Errorf("%d slice records do not cover %d slices: %w",
			len(f.SliceInfo), total, ErrInconsistentMetadata)
	}

	per := total / nVols
	out := make([]*File, 0, nVols)
	for n := 0; n < nVols; n++ {
		info := append([]*SliceHeader(nil), f.SliceInfo[n*per:(n+1)*per]...)
		out = append(out, f.derive(f.Pixels.Slab(n*per, (n+1)*per), info))
	}
	return out, nil
}

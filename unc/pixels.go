package unc

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Volume is a dense multi-dimensional array of int16 samples stored
// row-major with the slice axis (axis 0) outermost.
type Volume struct {
	shape []int
	data  []int16
}

// newVolume wraps data in a Volume of the given shape. The caller must
// supply exactly as many samples as the shape requires.
func newVolume(shape []int, data []int16) *Volume {
	return &Volume{shape: shape, data: data}
}

// Shape returns the per-axis extents.
func (v *Volume) Shape() []int {
	out := make([]int, len(v.shape))
	copy(out, v.shape)
	return out
}

// Rank returns the number of dimensions.
func (v *Volume) Rank() int {
	return len(v.shape)
}

// NumElements returns the total number of samples.
func (v *Volume) NumElements() int {
	return len(v.data)
}

// Data returns the flat sample slice in row-major order. The slice is the
// volume's backing store; callers must not modify it.
func (v *Volume) Data() []int16 {
	return v.data
}

// At returns the sample at the given multi-dimensional index.
func (v *Volume) At(idx ...int) int16 {
	if len(idx) != len(v.shape) {
		panic(fmt.Sprintf("unc: index of rank %d into volume of rank %d", len(idx), len(v.shape)))
	}
	flat := 0
	for i, x := range idx {
		if x < 0 || x >= v.shape[i] {
			panic(fmt.Sprintf("unc: index %d out of range on axis %d (extent %d)", x, i, v.shape[i]))
		}
		flat = flat*v.shape[i] + x
	}
	return v.data[flat]
}

// sliceSize returns the number of samples in one frame along axis 0.
func (v *Volume) sliceSize() int {
	size := 1
	for _, d := range v.shape[1:] {
		size *= d
	}
	return size
}

// Slab returns a copy of the contiguous frame range [lo, hi) along axis 0
// as a new Volume. The copy owns its samples.
func (v *Volume) Slab(lo, hi int) *Volume {
	if len(v.shape) == 0 {
		panic("unc: Slab on rank-0 volume")
	}
	if lo < 0 || hi > v.shape[0] || lo > hi {
		panic(fmt.Sprintf("unc: slab [%d, %d) out of range for %d frames", lo, hi, v.shape[0]))
	}
	shape := make([]int, len(v.shape))
	copy(shape, v.shape)
	shape[0] = hi - lo

	size := v.sliceSize()
	data := make([]int16, (hi-lo)*size)
	copy(data, v.data[lo*size:hi*size])
	return newVolume(shape, data)
}

// VolumeStats summarizes the sample distribution of a volume.
type VolumeStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Stats computes min, max, mean and standard deviation over all samples.
// An empty volume yields the zero VolumeStats.
func (v *Volume) Stats() VolumeStats {
	if len(v.data) == 0 {
		return VolumeStats{}
	}
	xs := make([]float64, len(v.data))
	for i, s := range v.data {
		xs[i] = float64(s)
	}
	return VolumeStats{
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   stat.Mean(xs, nil),
		StdDev: stat.StdDev(xs, nil),
	}
}

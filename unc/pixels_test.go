package unc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialVolume(shape ...int) *Volume {
	count := 1
	for _, d := range shape {
		count *= d
	}
	data := make([]int16, count)
	for i := range data {
		data[i] = int16(i)
	}
	return newVolume(shape, data)
}

func TestVolumeShapeAccessors(t *testing.T) {
	v := sequentialVolume(4, 64, 64)

	assert.Equal(t, []int{4, 64, 64}, v.Shape())
	assert.Equal(t, 3, v.Rank())
	assert.Equal(t, 4*64*64, v.NumElements())

	// Shape() returns a copy.
	v.Shape()[0] = 99
	assert.Equal(t, []int{4, 64, 64}, v.Shape())
}

func TestVolumeAtRowMajor(t *testing.T) {
	v := sequentialVolume(2, 3, 4)

	// Row-major, axis 0 slowest: flat index = (i*3 + j)*4 + k.
	assert.Equal(t, int16(0), v.At(0, 0, 0))
	assert.Equal(t, int16(1), v.At(0, 0, 1))
	assert.Equal(t, int16(4), v.At(0, 1, 0))
	assert.Equal(t, int16(12), v.At(1, 0, 0))
	assert.Equal(t, int16(23), v.At(1, 2, 3))
}

func TestVolumeAtPanics(t *testing.T) {
	v := sequentialVolume(2, 2)

	assert.Panics(t, func() { v.At(0) })
	assert.Panics(t, func() { v.At(2, 0) })
	assert.Panics(t, func() { v.At(0, -1) })
}

func TestVolumeSlab(t *testing.T) {
	v := sequentialVolume(4, 2, 2)

	slab := v.Slab(1, 3)
	assert.Equal(t, []int{2, 2, 2}, slab.Shape())
	assert.Equal(t, []int16{4, 5, 6, 7, 8, 9, 10, 11}, slab.Data())

	// The slab owns its samples.
	v.Data()[4] = -1
	assert.Equal(t, int16(4), slab.Data()[0])

	assert.Panics(t, func() { v.Slab(3, 5) })
	assert.Panics(t, func() { v.Slab(-1, 2) })
}

func TestVolumeStats(t *testing.T) {
	v := newVolume([]int{4}, []int16{1, 2, 3, 4})

	st := v.Stats()
	assert.Equal(t, 1.0, st.Min)
	assert.Equal(t, 4.0, st.Max)
	assert.Equal(t, 2.5, st.Mean)
	require.InDelta(t, math.Sqrt(5.0/3.0), st.StdDev, 1e-12)
}

func TestVolumeStatsEmpty(t *testing.T) {
	v := newVolume([]int{0, 4}, nil)
	assert.Equal(t, VolumeStats{}, v.Stats())
}

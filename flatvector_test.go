package marisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlatVectorRoundTrip(t *testing.T) {
	src := []uint32{0, 1, 2, 255, 256, 65535, 70000, 3}
	fv := newFlatVector()
	fv.Build(src)

	require.Equal(t, len(src), fv.Size())
	for i, v := range src {
		require.Equal(t, v, fv.Get(i), "index %d", i)
	}
}

func TestFlatVectorEmpty(t *testing.T) {
	fv := newFlatVector()
	fv.Build(nil)
	require.True(t, fv.Empty())
	require.Equal(t, uint32(0), fv.ValueSize())
}

func TestFlatVectorValueSizeIsMinimal(t *testing.T) {
	fv := newFlatVector()
	fv.Build([]uint32{0, 0, 0})
	require.Equal(t, uint32(0), fv.ValueSize())

	fv2 := newFlatVector()
	fv2.Build([]uint32{7})
	require.Equal(t, uint32(3), fv2.ValueSize())
}

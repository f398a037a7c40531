package marisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitVectorRankSelect(t *testing.T) {
	bv := newBitVector()
	bits := []bool{true, false, true, true, false, false, true, false, true, true}
	for _, b := range bits {
		bv.PushBack(b)
	}
	bv.Build(true, true)

	require.Equal(t, len(bits), bv.Size())

	var ones, zeros uint32
	for i, b := range bits {
		require.Equal(t, b, bv.Get(i))
		require.Equal(t, ones, bv.Rank1(i))
		require.Equal(t, zeros, bv.Rank0(i))
		if b {
			require.Equal(t, i, bv.Select1(ones))
			ones++
		} else {
			require.Equal(t, i, bv.Select0(zeros))
			zeros++
		}
	}
	require.Equal(t, ones, bv.Num1s())
	require.Equal(t, zeros, bv.Num0s())
}

func TestBitVectorLargeRandomPattern(t *testing.T) {
	bv := newBitVector()
	const n = 5000
	want := make([]bool, n)
	state := uint32(123456789)
	for i := 0; i < n; i++ {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		want[i] = state%3 == 0
		bv.PushBack(want[i])
	}
	bv.Build(true, true)

	var ones, zeros uint32
	for i, b := range want {
		if b {
			require.Equal(t, i, bv.Select1(ones), "select1(%d)", ones)
			ones++
		} else {
			require.Equal(t, i, bv.Select0(zeros), "select0(%d)", zeros)
			zeros++
		}
	}
	require.Equal(t, ones, bv.Num1s())
	require.Equal(t, ones, bv.Rank1(n))
}

func TestBitVectorPushBackAfterBuildPanics(t *testing.T) {
	bv := newBitVector()
	bv.PushBack(true)
	bv.Build(false, false)
	require.Panics(t, func() { bv.PushBack(false) })
}

package marisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTailOverlapAndRestore(t *testing.T) {
	suffixes := []tailSuffix{
		{bytes: []byte("ndle")},
		{bytes: []byte("dle")},
		{bytes: []byte("le")},
	}
	tl, offsets := buildTail(suffixes, TailModeText)
	require.Equal(t, TailModeText, tl.mode())

	for i, s := range suffixes {
		got := tl.restore(offsets[i], nil)
		require.Equal(t, s.bytes, got)
	}
}

func TestBuildTailBinaryModePromotion(t *testing.T) {
	suffixes := []tailSuffix{
		{bytes: []byte{0x41, 0x00, 0x42}},
		{bytes: []byte("plain")},
	}
	tl, offsets := buildTail(suffixes, TailModeText)
	require.Equal(t, TailModeBinary, tl.mode())

	for i, s := range suffixes {
		got := tl.restore(offsets[i], nil)
		require.Equal(t, s.bytes, got)
	}
}

func TestTailMatch(t *testing.T) {
	tl, offsets := buildTail([]tailSuffix{{bytes: []byte("hello")}}, TailModeText)
	query := []byte("hello world")
	pos := 0
	require.True(t, tl.match(offsets[0], query, &pos))
	require.Equal(t, 5, pos)

	pos = 0
	require.False(t, tl.match(offsets[0], []byte("help"), &pos))
}

func TestTailPrefixMatch(t *testing.T) {
	tl, offsets := buildTail([]tailSuffix{{bytes: []byte("hello")}}, TailModeText)

	pos := 0
	out := tl.prefixMatch(offsets[0], []byte("hel"), &pos, nil)
	require.Equal(t, []byte("hello"), out)
	require.Equal(t, 3, pos)

	pos = 0
	out = tl.prefixMatch(offsets[0], []byte("hex"), &pos, nil)
	require.Nil(t, out)
}

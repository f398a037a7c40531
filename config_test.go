package marisa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.EqualValues(t, defaultNumTries, cfg.NumTries())
	require.Equal(t, CacheLevelNormal, cfg.CacheLevel())
	require.Equal(t, TailModeText, cfg.TailMode())
	require.Equal(t, NodeOrderWeight, cfg.NodeOrder())
}

func TestConfigFlagsRoundTrip(t *testing.T) {
	cfg, err := ParseConfig(5 | uint32(CacheLevelHuge) | uint32(TailModeBinary) | uint32(NodeOrderLabel))
	require.NoError(t, err)
	require.EqualValues(t, 5, cfg.NumTries())
	require.Equal(t, CacheLevelHuge, cfg.CacheLevel())
	require.Equal(t, TailModeBinary, cfg.TailMode())
	require.Equal(t, NodeOrderLabel, cfg.NodeOrder())

	back, err := ParseConfig(cfg.Flags())
	require.NoError(t, err)
	require.Equal(t, cfg, back)
}

func TestConfigRejectsUnknownBits(t *testing.T) {
	_, err := ParseConfig(1 << 24)
	require.Error(t, err)
}

func TestConfigRejectsUndefinedCacheLevel(t *testing.T) {
	_, err := ParseConfig(0x00180)
	require.Error(t, err)
}

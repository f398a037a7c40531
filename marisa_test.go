package marisa

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

var sampleKeys = []string{
	"bbc",
	"able",
	"abc",
	"abcde",
	"can",
	"candle",
	"candy",
	"2SmS9SSAc9",
	"1uTqbtjkcwmuOIQxTprx",
	"Abracadabra",
	"Alpha",
	"Bravo",
	"Charlie",
	"Delta",
	"Echo",
	"Foxtrot",
	"Golf",
	"Hotel",
	"India",
	"Juliet",
	"Kilo",
	"Lima",
	"Mike",
	"November",
	"Oscar",
	"Papa",
	"Quebec",
	"Romeo",
	"Sierra",
	"Tango",
	"Uniform",
	"Victor",
	"Whiskey",
	"X-ray",
	"Yankee",
	"Zulu",
	"Line",
}

func buildSampleTrie(t *testing.T, cfg Config) (*Trie, *Keyset) {
	t.Helper()
	ks := NewKeyset()
	for _, k := range sampleKeys {
		require.NoError(t, ks.PushBackString(k))
	}
	trie := NewTrie()
	trie.Build(ks, cfg)
	return trie, ks
}

func TestTrieBuildAndLookup(t *testing.T) {
	for _, cfg := range []Config{NewConfig(), mustParseConfig(t, NodeOrderLabel, TailModeBinary)} {
		trie, ks := buildSampleTrie(t, cfg)
		require.Equal(t, uint32(len(sampleKeys)), trie.NumKeys())

		agent := NewAgent()
		seen := make(map[uint32]bool)
		for i := range sampleKeys {
			_, _, id := ks.Get(i)
			require.False(t, seen[id], "duplicate key id %d", id)
			seen[id] = true
		}

		for _, key := range sampleKeys {
			agent.SetQueryString(key)
			require.True(t, trie.Lookup(agent), "expected to find %q", key)
			require.Equal(t, key, string(agent.Key()))
		}

		agent.SetQueryString("not-a-key-in-the-set")
		require.False(t, trie.Lookup(agent))
	}
}

func mustParseConfig(t *testing.T, order NodeOrder, mode TailMode) Config {
	t.Helper()
	cfg, err := ParseConfig(uint32(order) | uint32(mode) | uint32(CacheLevelSmall) | 2)
	require.NoError(t, err)
	return cfg
}

func TestTrieReverseLookup(t *testing.T) {
	trie, ks := buildSampleTrie(t, NewConfig())
	agent := NewAgent()

	for i, key := range sampleKeys {
		_, _, id := ks.Get(i)
		agent.SetQueryID(id)
		trie.ReverseLookup(agent)
		require.Equal(t, key, string(agent.Key()))
	}
}

func TestTrieCommonPrefixSearch(t *testing.T) {
	ks := NewKeyset()
	for _, k := range []string{"bbc", "able", "abc", "abcde", "can"} {
		require.NoError(t, ks.PushBackString(k))
	}
	trie := NewTrie()
	trie.Build(ks, NewConfig())

	agent := NewAgent()
	agent.SetQueryString("abcde")

	var got []string
	for trie.CommonPrefixSearch(agent) {
		got = append(got, string(agent.Key()))
	}
	require.Equal(t, []string{"abc", "abcde"}, got)
}

func TestTriePredictiveSearch(t *testing.T) {
	ks := NewKeyset()
	for _, k := range []string{"bbc", "able", "abc", "abcde", "can"} {
		require.NoError(t, ks.PushBackString(k))
	}
	trie := NewTrie()
	trie.Build(ks, NewConfig())

	agent := NewAgent()
	agent.SetQueryString("ab")

	var got []string
	for trie.PredictiveSearch(agent) {
		got = append(got, string(agent.Key()))
	}
	sort.Strings(got)
	require.Equal(t, []string{"abc", "abcde", "able"}, got)

	agent.SetQueryString("zzz")
	require.False(t, trie.PredictiveSearch(agent))
}

func TestTrieSaveLoadRoundTrip(t *testing.T) {
	trie, _ := buildSampleTrie(t, NewConfig())

	var buf bytes.Buffer
	require.NoError(t, trie.WriteTo(&buf))

	loaded := NewTrie()
	ir := newIOReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, readHeader(ir))
	flags, err := ir.readU32()
	require.NoError(t, err)
	cfg, err := ParseConfig(flags)
	require.NoError(t, err)
	root, err := readTrieLevel(ir, cfg, 1)
	require.NoError(t, err)
	loaded.root = root
	loaded.cfg = cfg

	agent := NewAgent()
	for _, key := range sampleKeys {
		agent.SetQueryString(key)
		require.True(t, loaded.Lookup(agent))
		require.Equal(t, key, string(agent.Key()))
	}
}

func TestKeysetPushBackWeighted(t *testing.T) {
	ks := NewKeyset()
	require.NoError(t, ks.PushBackWeighted([]byte("heavy"), 5.0))
	require.NoError(t, ks.PushBackString("light"))
	require.Equal(t, 2, ks.NumKeys())

	b, w, _ := ks.Get(0)
	require.Equal(t, "heavy", string(b))
	require.Equal(t, float32(5.0), w)
}

func TestTrieEmptyKeyset(t *testing.T) {
	ks := NewKeyset()
	trie := NewTrie()
	trie.Build(ks, NewConfig())
	require.Equal(t, uint32(0), trie.NumKeys())

	agent := NewAgent()
	agent.SetQueryString("anything")
	require.False(t, trie.Lookup(agent))
}

package marisa

import (
	"sort"

	"github.com/oleiade/lane"
)

// buildKey is one input key as the builder sees it: bytes plus weight
// plus the index it should be written back to once its final node id
// (and therefore key id) is known. For the outermost level this index
// is the caller's key index; for a recursively-built level it is the
// position of the multi-byte label within that level's own next-level
// key list.
type buildKey struct {
	bytes  []byte
	weight float32
	index  int
}

func (k *buildKey) byteAt(depth int) (byte, bool) {
	if depth >= len(k.bytes) {
		return 0, false
	}
	return k.bytes[depth], true
}
func (k *buildKey) keyLength() int { return len(k.bytes) }

type terminalRecord struct {
	nodeID    uint32
	origIndex int
}

type linkedLabel struct {
	nodeID uint32
	label  []byte
	weight float32
}

type cacheCandidate struct {
	parent, child uint32
	weight        float32
	label         byte
}

// buildTrieLevel builds one loudsTrie level (spec.md section 4.7) from
// keys already carrying their caller-assigned indices, recursing into
// a child loudsTrie (or, at the innermost level, the shared tail) for
// any edge label longer than one byte. It returns the level and, for
// each input key (indexed the same way as keys), the terminal id that
// key resolved to -- the caller writes those back to its own keyset
// or uses them to patch a parent level's link encoding.
func buildTrieLevel(keys []buildKey, cfg Config, trieID uint32) (*loudsTrie, []uint32) {
	sorted := sortBuildKeys(keys)

	louds := newBitVector()
	terminalFlags := newBitVector()
	linkFlags := newBitVector()
	bases := []byte{0}

	louds.PushBack(true)
	louds.PushBack(false)
	linkFlags.PushBack(false)

	var terminalRecords []terminalRecord
	var linked []linkedLabel
	var candidates []cacheCandidate
	var numL1Nodes uint32

	nodeID := uint32(0)
	nextNodeID := uint32(1)

	queue := lane.NewQueue()
	queue.Enqueue(nodeRange{begin: 0, end: len(sorted), keyPos: 0})

	for !queue.Empty() {
		r := queue.Dequeue().(nodeRange)
		cur := nodeID
		nodeID++

		isTerminal := false
		for r.begin < r.end && sorted[r.begin].keyLength() == r.keyPos {
			isTerminal = true
			terminalRecords = append(terminalRecords, terminalRecord{nodeID: cur, origIndex: sorted[r.begin].index})
			r.begin++
		}
		terminalFlags.PushBack(isTerminal)

		if r.begin == r.end {
			louds.PushBack(false)
			continue
		}

		groups := partitionGroups(sorted, r.begin, r.end, r.keyPos)
		if cfg.NodeOrder() == NodeOrderWeight {
			sort.SliceStable(groups, func(i, j int) bool { return groups[i].weight > groups[j].weight })
		}

		for _, g := range groups {
			label, _ := sorted[g.begin].byteAt(r.keyPos)
			keyPosEnd := extendCommonPrefix(sorted, g.begin, g.end, r.keyPos)

			childID := nextNodeID
			nextNodeID++
			candidates = append(candidates, cacheCandidate{parent: cur, child: childID, weight: g.weight, label: label})

			if keyPosEnd == r.keyPos+1 {
				bases = append(bases, label)
				linkFlags.PushBack(false)
			} else {
				bases = append(bases, 0)
				linkFlags.PushBack(true)
				lbl := append([]byte(nil), sorted[g.begin].bytesAt(r.keyPos, keyPosEnd)...)
				linked = append(linked, linkedLabel{nodeID: childID, label: lbl, weight: g.weight})
			}

			louds.PushBack(true)
			queue.Enqueue(nodeRange{begin: g.begin, end: g.end, keyPos: keyPosEnd})
		}
		louds.PushBack(false)

		if cur == 0 {
			numL1Nodes = nextNodeID - 1
		}
	}

	louds.Build(trieID == 1, true)
	linkFlags.Build(false, false)
	terminalFlags.Build(false, true)

	var tl *tail
	var child *loudsTrie
	var nextTerminals []uint32

	if len(linked) > 0 {
		if trieID >= cfg.NumTries() {
			suffixes := make([]tailSuffix, len(linked))
			for i, l := range linked {
				suffixes[i] = tailSuffix{bytes: l.label}
			}
			tl, nextTerminals = buildTail(suffixes, cfg.TailMode())
		} else {
			childKeys := make([]buildKey, len(linked))
			for i, l := range linked {
				childKeys[i] = buildKey{bytes: reverseBytes(l.label), weight: l.weight, index: i}
			}
			child, nextTerminals = buildTrieLevel(childKeys, cfg, trieID+1)
		}

		for i, l := range linked {
			v := nextTerminals[i]
			bases[l.nodeID] = byte(v)
		}
	}

	extraVals := make([]uint32, len(linked))
	for i := range linked {
		extraVals[i] = nextTerminals[i] >> 8
	}
	extras := newFlatVector()
	extras.Build(extraVals)

	t := &loudsTrie{
		louds:         louds,
		terminalFlags: terminalFlags,
		linkFlags:     linkFlags,
		bases:         bases,
		extras:        extras,
		tail:          tl,
		nextTrie:      child,
		numL1Nodes:    numL1Nodes,
	}
	fillCache(t, candidates, cfg.CacheLevel(), uint32(len(keys)))

	outTerminals := make([]uint32, len(keys))
	for _, rec := range terminalRecords {
		outTerminals[rec.origIndex] = terminalFlags.Rank1(int(rec.nodeID))
	}
	return t, outTerminals
}

// bytesAt returns the key's bytes in [from, to).
func (k *buildKey) bytesAt(from, to int) []byte { return k.bytes[from:to] }

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// sortBuildKeys sorts keys by the depth-based radix quicksort and
// returns the sorted view as *buildKey, leaving the caller's slice
// (and its indices) untouched.
func sortBuildKeys(keys []buildKey) []*buildKey {
	items := make([]sortable, len(keys))
	for i := range keys {
		items[i] = &keys[i]
	}
	sortByDepth(items)
	sorted := make([]*buildKey, len(items))
	for i, it := range items {
		sorted[i] = it.(*buildKey)
	}
	return sorted
}

// partitionGroups splits sorted[begin:end] into contiguous groups
// sharing the same byte at keyPos, summing each group's weight.
func partitionGroups(sorted []*buildKey, begin, end, keyPos int) []weightedGroup {
	var groups []weightedGroup
	i := begin
	for i < end {
		label, _ := sorted[i].byteAt(keyPos)
		w := sorted[i].weight
		j := i + 1
		for j < end {
			lb, _ := sorted[j].byteAt(keyPos)
			if lb != label {
				break
			}
			w += sorted[j].weight
			j++
		}
		groups = append(groups, weightedGroup{begin: i, end: j, weight: w})
		i = j
	}
	return groups
}

// extendCommonPrefix returns the largest keyPos' > keyPos such that
// every key in sorted[begin:end] shares the same byte at every
// position in [keyPos, keyPos').
func extendCommonPrefix(sorted []*buildKey, begin, end, keyPos int) int {
	p := keyPos + 1
	for {
		b0, ok0 := sorted[begin].byteAt(p)
		if !ok0 {
			return p
		}
		for i := begin + 1; i < end; i++ {
			bi, oki := sorted[i].byteAt(p)
			if !oki || bi != b0 {
				return p
			}
		}
		p++
	}
}

// fillCache builds t.cache from the (parent, child, weight, label)
// candidates recorded during this level's BFS emission: a slot is
// claimed by whichever candidate hashing to it has the greatest
// weight, then every claimed slot is converted from its cold
// (parent, child, weight) form to its hot (parent, child, base,
// extra) form.
func fillCache(t *loudsTrie, candidates []cacheCandidate, level CacheLevel, numKeys uint32) {
	size := cacheSize(numKeys, uint32(level))
	mask := size - 1
	slots := make([]cacheSlot, size)
	for i := range slots {
		slots[i] = emptyCacheSlot()
	}

	for _, c := range candidates {
		h := cacheHashDescent(c.parent, c.label, mask)
		if slots[h].isEmpty() || c.weight > slots[h].weight {
			slots[h] = cacheSlot{parent: c.parent, child: c.child, weight: c.weight}
		}
	}

	for i := range slots {
		if slots[i].isEmpty() {
			continue
		}
		child := slots[i].child
		slots[i].base = t.bases[child]
		if t.linkFlags.Get(int(child)) {
			slots[i].extra = t.extras.Get(int(t.linkFlags.Rank1(int(child))))
		} else {
			slots[i].extra = invalidExtra
		}
	}

	t.cache = slots
	t.cacheMask = mask
}

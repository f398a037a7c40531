package marisa

// loudsTrie is one level of the recursively-nested trie. The
// outermost level holds the keys passed in by the caller; whenever an
// edge label is longer than one byte it is pushed either into a
// nested loudsTrie (next_trie, storing the label's bytes reversed) or,
// at the innermost level, into the shared tail.
type loudsTrie struct {
	louds         *bitVector
	terminalFlags *bitVector
	linkFlags     *bitVector
	bases         []byte
	extras        *flatVector
	tail          *tail      // non-nil iff nextTrie == nil
	nextTrie      *loudsTrie // non-nil iff tail == nil

	cache     []cacheSlot
	cacheMask uint32

	numL1Nodes uint32
}

// getLink reconstructs the full link value for a linked node: the low
// byte lives in bases (so a single-byte cache lookup still works),
// the rest in extras, indexed by linkFlags.rank1(node).
func (t *loudsTrie) getLink(node uint32) uint32 {
	rank := t.linkFlags.Rank1(int(node))
	return uint32(t.bases[node]) | (t.extras.Get(int(rank)) << 8)
}

// restoreLink appends the full forward label stored at link to out. If
// this level nests further, link is a key id of nextTrie, whose keys
// are the labels reversed: the key is restored from its terminal node
// and appended back to front. At the innermost level the tail is read
// directly.
func (t *loudsTrie) restoreLink(link uint32, out []byte) []byte {
	if t.nextTrie != nil {
		node := uint32(t.nextTrie.terminalFlags.Select1(link))
		label := t.nextTrie.restoreNode(node, nil)
		for i := len(label) - 1; i >= 0; i-- {
			out = append(out, label[i])
		}
		return out
	}
	return t.tail.restore(link, out)
}

// restoreNode rebuilds the forward byte sequence leading to node by
// walking upward to this level's root (num_l1_nodes). Ascending
// collects each step's contribution -- one plain byte, or one whole
// linked label -- in root-to-leaf reverse order, so the collected
// chunks are appended to out back to front; a chunk's own bytes are
// never reversed, only the order the chunks are replayed in.
func (t *loudsTrie) restoreNode(node uint32, out []byte) []byte {
	if node == 0 {
		return out
	}
	var chunks [][]byte
	for {
		if t.linkFlags.Get(int(node)) {
			link := t.getLink(node)
			chunks = append(chunks, t.restoreLink(link, nil))
		} else {
			chunks = append(chunks, []byte{t.bases[node]})
		}
		if node <= t.numL1Nodes {
			break
		}
		node = uint32(t.louds.Select1(node)) - node - 1
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		out = append(out, chunks[i]...)
	}
	return out
}

// matchLink reports whether the query, starting at *queryPos, matches
// the label stored at link, advancing *queryPos past it on success.
func (t *loudsTrie) matchLink(link uint32, query []byte, queryPos *int) bool {
	if t.nextTrie == nil {
		return t.tail.match(link, query, queryPos)
	}
	label := t.restoreLink(link, nil)
	start := *queryPos
	if start+len(label) > len(query) {
		return false
	}
	for i, b := range label {
		if query[start+i] != b {
			return false
		}
	}
	*queryPos = start + len(label)
	return true
}

// prefixMatchLink is matchLink's predictive-search counterpart: it
// succeeds even when the query runs out partway through the label
// (appending the label's unmatched remainder to out), since a
// predictive search only needs the query to be a prefix of some key.
func (t *loudsTrie) prefixMatchLink(link uint32, query []byte, queryPos *int, out []byte) ([]byte, bool) {
	if t.nextTrie == nil {
		res := t.tail.prefixMatch(link, query, queryPos, out)
		return res, res != nil
	}
	label := t.restoreLink(link, nil)
	start := *queryPos
	i := 0
	for i < len(label) && start+i < len(query) {
		if query[start+i] != label[i] {
			return out, false
		}
		i++
	}
	out = append(out, label...)
	*queryPos = start + i
	return out, true
}

// findChild attempts to descend from node on query[*queryPos:],
// advancing *queryPos on success. It probes the cache first and falls
// back to a linear sibling scan over the louds bit vector.
func (t *loudsTrie) findChild(node uint32, query []byte, queryPos *int) (uint32, bool) {
	if *queryPos >= len(query) {
		return 0, false
	}
	label := query[*queryPos]

	if len(t.cache) > 0 {
		h := cacheHashDescent(node, label, t.cacheMask)
		slot := t.cache[h]
		if slot.parent == node && slot.base == label {
			if slot.extra == invalidExtra {
				*queryPos++
				return slot.child, true
			}
			link := uint32(slot.base) | (slot.extra << 8)
			saved := *queryPos
			if t.matchLink(link, query, queryPos) {
				return slot.child, true
			}
			*queryPos = saved
			return 0, false
		}
	}

	return t.findChildSlow(node, label, query, queryPos)
}

func (t *loudsTrie) findChildSlow(node uint32, label byte, query []byte, queryPos *int) (uint32, bool) {
	p := t.louds.Select0(node) + 1
	if !t.louds.Get(p) {
		return 0, false
	}
	child := uint32(p) - node - 1
	for {
		if t.linkFlags.Get(int(child)) {
			link := t.getLink(child)
			saved := *queryPos
			if t.matchLink(link, query, queryPos) {
				return child, true
			}
			*queryPos = saved
		} else if t.bases[child] == label {
			*queryPos++
			return child, true
		}
		p++
		if !t.louds.Get(p) {
			return 0, false
		}
		child++
	}
}

// predictiveFindChild is findChild's predictive-search counterpart: it
// appends the bytes it consumes (including any unmatched remainder of
// a linked label) to out, succeeding on a partial match at the end of
// the query.
func (t *loudsTrie) predictiveFindChild(node uint32, query []byte, queryPos *int, out []byte) (uint32, []byte, bool) {
	p := t.louds.Select0(node) + 1
	if !t.louds.Get(p) {
		return 0, out, false
	}
	child := uint32(p) - node - 1
	for {
		if t.linkFlags.Get(int(child)) {
			link := t.getLink(child)
			saved := *queryPos
			savedLen := len(out)
			var ok bool
			out, ok = t.prefixMatchLink(link, query, queryPos, out)
			if ok {
				return child, out, true
			}
			*queryPos = saved
			out = out[:savedLen]
		} else if t.bases[child] == query[*queryPos] {
			out = append(out, t.bases[child])
			*queryPos++
			return child, out, true
		}
		p++
		if !t.louds.Get(p) {
			return 0, out, false
		}
		child++
	}
}

// lookup performs an exact-match search for agent's query.
func (t *loudsTrie) lookup(a *Agent) bool {
	query := a.query.asBytes()
	node := uint32(0)
	pos := 0
	for pos != len(query) {
		next, ok := t.findChild(node, query, &pos)
		if !ok {
			return false
		}
		node = next
	}
	if !t.terminalFlags.Get(int(node)) {
		return false
	}
	a.setKeyFromQuery()
	a.key.setID(t.terminalFlags.Rank1(int(node)))
	return true
}

// reverseLookup rebuilds the key for agent's query id.
func (t *loudsTrie) reverseLookup(a *Agent) bool {
	keyID := a.query.idValue()
	if keyID >= t.terminalFlags.Num1s() {
		panic("marisa: reverse lookup key id out of range")
	}
	state := a.ensureState()
	state.reverseLookupInit()
	node := uint32(t.terminalFlags.Select1(keyID))
	state.keyBuf = t.restoreNode(node, state.keyBuf)
	a.key.setBytes(state.keyBuf)
	a.key.setID(keyID)
	return true
}

// commonPrefixSearch is the stateful common-prefix-search iterator
// described in spec.md section 4.6: each call yields one key that is
// a prefix of agent's query, in increasing order of length.
func (t *loudsTrie) commonPrefixSearch(a *Agent) bool {
	state := a.ensureState()
	if state.status == statusEndOfCommonPrefixSearch {
		return false
	}
	if state.status == statusReadyToAll {
		state.commonPrefixSearchInit()
		if t.terminalFlags.Get(int(state.nodeID)) {
			a.setKeyFromQueryPrefix(int(state.queryPos))
			a.key.setID(t.terminalFlags.Rank1(int(state.nodeID)))
			return true
		}
	}

	query := a.query.asBytes()
	pos := int(state.queryPos)
	for pos < len(query) {
		next, ok := t.findChild(state.nodeID, query, &pos)
		if !ok {
			state.queryPos = uint32(pos)
			state.status = statusEndOfCommonPrefixSearch
			return false
		}
		state.nodeID = next
		state.queryPos = uint32(pos)
		if t.terminalFlags.Get(int(next)) {
			a.setKeyFromQueryPrefix(pos)
			a.key.setID(t.terminalFlags.Rank1(int(next)))
			return true
		}
	}
	state.status = statusEndOfCommonPrefixSearch
	return false
}

// predictiveSearchLocus descends to the node representing agent's
// query prefix, recording the consumed key bytes into state.keyBuf.
func (t *loudsTrie) predictiveSearchLocus(a *Agent, state *searchState) bool {
	query := a.query.asBytes()
	node := uint32(0)
	pos := 0
	buf := state.keyBuf[:0]
	for pos < len(query) {
		next, nextBuf, ok := t.predictiveFindChild(node, query, &pos, buf)
		if !ok {
			return false
		}
		node, buf = next, nextBuf
	}
	state.nodeID = node
	state.queryPos = uint32(pos)
	state.keyBuf = buf
	return true
}

// predictiveSearch is the stateful predictive-search (DFS) iterator
// described in spec.md section 4.6: each call yields one key that
// has agent's query as a prefix, in trie order.
func (t *loudsTrie) predictiveSearch(a *Agent) bool {
	state := a.ensureState()
	if state.status == statusEndOfPredictiveSearch {
		return false
	}

	if state.status == statusReadyToAll {
		if !t.predictiveSearchLocus(a, state) {
			state.status = statusEndOfPredictiveSearch
			return false
		}
		locus := state.nodeID
		state.history = append(state.history, history{
			nodeID:   locus,
			loudsPos: uint32(t.louds.Select0(locus) + 1),
			keyPos:   uint32(len(state.keyBuf)),
			linkID:   invalidLinkID,
			keyID:    invalidKeyID,
		})
		state.status = statusReadyToPredictiveSearch
		if t.terminalFlags.Get(int(locus)) {
			a.setKeyFromState()
			a.key.setID(t.terminalFlags.Rank1(int(locus)))
			return true
		}
	}

	for len(state.history) > 0 {
		top := &state.history[len(state.history)-1]
		if !t.louds.Get(int(top.loudsPos)) {
			state.history = state.history[:len(state.history)-1]
			if len(state.history) > 0 {
				state.keyBuf = state.keyBuf[:state.history[len(state.history)-1].keyPos]
			} else {
				state.keyBuf = state.keyBuf[:0]
			}
			continue
		}

		child := top.loudsPos - top.nodeID - 1
		top.loudsPos++

		if t.linkFlags.Get(int(child)) {
			link := t.getLink(child)
			state.keyBuf = t.restoreLink(link, state.keyBuf)
		} else {
			state.keyBuf = append(state.keyBuf, t.bases[child])
		}

		state.history = append(state.history, history{
			nodeID:   child,
			loudsPos: uint32(t.louds.Select0(child) + 1),
			keyPos:   uint32(len(state.keyBuf)),
			linkID:   invalidLinkID,
			keyID:    invalidKeyID,
		})

		if t.terminalFlags.Get(int(child)) {
			a.setKeyFromState()
			a.key.setID(t.terminalFlags.Rank1(int(child)))
			return true
		}
	}

	state.status = statusEndOfPredictiveSearch
	return false
}

// numKeys reports how many terminal nodes this level's terminalFlags
// records -- the outermost level's count is the trie's total key
// count.
func (t *loudsTrie) numKeys() uint32 {
	return t.terminalFlags.Num1s()
}

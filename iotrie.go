package marisa

import "github.com/pkg/errors"

// writeTrieLevel serializes one recursion level: its three bit
// vectors, bases, extras and cache, followed by either a nested level
// (if this level links into a child trie) or the shared tail.
func writeTrieLevel(w *ioWriter, t *loudsTrie) error {
	if err := w.writeU32(t.numL1Nodes); err != nil {
		return err
	}
	if err := w.writeBitVector(t.louds); err != nil {
		return err
	}
	if err := w.writeBitVector(t.terminalFlags); err != nil {
		return err
	}
	if err := w.writeBitVector(t.linkFlags); err != nil {
		return err
	}
	if err := w.writeU8Vector(t.bases); err != nil {
		return err
	}
	if err := w.writeFlatVector(t.extras); err != nil {
		return err
	}
	if err := w.writeCacheVector(t.cache); err != nil {
		return err
	}
	if err := w.writeU32(t.cacheMask); err != nil {
		return err
	}

	if t.nextTrie != nil {
		if err := w.writeRaw([]byte{1}); err != nil {
			return err
		}
		return writeTrieLevel(w, t.nextTrie)
	}

	if err := w.writeRaw([]byte{0}); err != nil {
		return err
	}
	return writeTail(w, t.tail)
}

func writeTail(w *ioWriter, tl *tail) error {
	if err := w.writeU8Vector(tl.buf); err != nil {
		return err
	}
	if tl.mode() == TailModeBinary {
		if err := w.writeRaw([]byte{1}); err != nil {
			return err
		}
		return w.writeBitVector(tl.endFlags)
	}
	return w.writeRaw([]byte{0})
}

// readTrieLevel is writeTrieLevel's counterpart; cfg is only consulted
// to know how many levels remain possible (a malformed file could
// otherwise recurse indefinitely).
func readTrieLevel(r *ioReader, cfg Config, trieID uint32) (*loudsTrie, error) {
	if trieID > cfg.NumTries() {
		return nil, errors.New("marisa: trie file recurses past its declared num_tries")
	}

	numL1Nodes, err := r.readU32()
	if err != nil {
		return nil, err
	}
	louds, err := r.readBitVector()
	if err != nil {
		return nil, err
	}
	terminalFlags, err := r.readBitVector()
	if err != nil {
		return nil, err
	}
	linkFlags, err := r.readBitVector()
	if err != nil {
		return nil, err
	}
	bases, err := r.readU8Vector()
	if err != nil {
		return nil, err
	}
	extras, err := r.readFlatVector()
	if err != nil {
		return nil, err
	}
	cache, err := r.readCacheVector()
	if err != nil {
		return nil, err
	}
	cacheMask, err := r.readU32()
	if err != nil {
		return nil, err
	}

	tag, err := r.readRaw(1)
	if err != nil {
		return nil, err
	}

	t := &loudsTrie{
		louds:         louds,
		terminalFlags: terminalFlags,
		linkFlags:     linkFlags,
		bases:         bases,
		extras:        extras,
		cache:         cache,
		cacheMask:     cacheMask,
		numL1Nodes:    numL1Nodes,
	}

	if tag[0] == 1 {
		child, err := readTrieLevel(r, cfg, trieID+1)
		if err != nil {
			return nil, err
		}
		t.nextTrie = child
		return t, nil
	}

	tl, err := readTail(r)
	if err != nil {
		return nil, err
	}
	t.tail = tl
	return t, nil
}

func readTail(r *ioReader) (*tail, error) {
	buf, err := r.readU8Vector()
	if err != nil {
		return nil, err
	}
	tag, err := r.readRaw(1)
	if err != nil {
		return nil, err
	}
	tl := &tail{buf: buf}
	if tag[0] == 1 {
		endFlags, err := r.readBitVector()
		if err != nil {
			return nil, err
		}
		tl.endFlags = endFlags
	}
	return tl, nil
}

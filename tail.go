package marisa

// tail stores the merged suffixes of the innermost trie level's
// multi-byte labels. In text mode (the default) each suffix occupies
// buf[offset:] up to and not including the next 0x00 byte. In binary
// mode there is no NUL terminator; instead endFlags has one bit per
// byte of buf, set on the last byte of each suffix, and is used
// whenever a suffix might itself contain a 0x00 byte.
type tail struct {
	buf      []byte
	endFlags *bitVector // nil (empty) in text mode
}

func (t *tail) mode() TailMode {
	if t.endFlags == nil || t.endFlags.Empty() {
		return TailModeText
	}
	return TailModeBinary
}

func (t *tail) empty() bool { return len(t.buf) == 0 }

// suffixEnd returns the offset one past the last byte of the suffix
// starting at offset.
func (t *tail) suffixEnd(offset uint32) int {
	if t.mode() == TailModeText {
		i := int(offset)
		for t.buf[i] != 0 {
			i++
		}
		return i
	}
	i := int(offset)
	for !t.endFlags.Get(i) {
		i++
	}
	return i + 1
}

// restore appends the suffix stored at offset to out.
func (t *tail) restore(offset uint32, out []byte) []byte {
	end := t.suffixEnd(offset)
	return append(out, t.buf[offset:end]...)
}

// match reports whether the query's remaining bytes, starting at
// *queryPos, equal the suffix stored at offset. On success it
// advances *queryPos past the matched bytes.
func (t *tail) match(offset uint32, q []byte, queryPos *int) bool {
	end := t.suffixEnd(offset)
	suffix := t.buf[offset:end]
	start := *queryPos
	if start+len(suffix) > len(q) {
		return false
	}
	for i, b := range suffix {
		if q[start+i] != b {
			return false
		}
	}
	*queryPos = start + len(suffix)
	return true
}

// prefixMatch is the asymmetric variant used by predictive search: it
// consumes query bytes while they last, appending each to out, then
// once the query is exhausted appends the remainder of the suffix to
// out regardless. If a query byte differs from the suffix it returns
// nil.
func (t *tail) prefixMatch(offset uint32, q []byte, queryPos *int, out []byte) []byte {
	end := t.suffixEnd(offset)
	suffix := t.buf[offset:end]
	start := *queryPos
	i := 0
	for i < len(suffix) && start+i < len(q) {
		if q[start+i] != suffix[i] {
			return nil
		}
		out = append(out, suffix[i])
		i++
	}
	*queryPos = start + i
	if i < len(suffix) {
		out = append(out, suffix[i:]...)
	}
	return out
}

// tailSuffix is one suffix handed to buildTail. Its position in the
// slice passed to buildTail is the index its offset is written back to
// (the innermost level's collected next-level keys are not in sorted
// order, so offsets are returned keyed by original position).
type tailSuffix struct {
	bytes []byte
}

// buildTail merges suffixes by shared tail, choosing text or binary
// mode, and returns per-input offsets in the same order as suffixes.
//
// Offsets are computed by sorting suffixes in reverse byte order
// (comparing from the end of each string towards the front) so that
// any suffix that is itself the tail of a later-processed, longer
// suffix can reuse that suffix's storage at an offset further into
// its bytes -- this is the "overlap" compression spec.md section 4.4
// describes. The full build-side offset algorithm for Tail does not
// survive in original_source (its read side is complete but its
// write side is two TODO stubs there); this implementation follows
// spec.md's description directly.
func buildTail(suffixes []tailSuffix, mode TailMode) (*tail, []uint32) {
	n := len(suffixes)
	offsets := make([]uint32, n)

	binary := mode == TailModeBinary
	if !binary {
		for _, s := range suffixes {
			for _, b := range s.bytes {
				if b == 0 {
					binary = true
					break
				}
			}
			if binary {
				break
			}
		}
	}

	// Sorting by entry.byteAt (which indexes from the end of the
	// slice) orders suffixes by common trailing bytes without copying
	// them; ascending order puts a suffix before any longer string it
	// is a suffix of, so the overlap pass below walks the result back
	// to front to process the longest string in each overlap chain
	// first.
	items := make([]sortable, n)
	entries := make([]entry, n)
	for i, s := range suffixes {
		entries[i] = newEntry(s.bytes, i)
		items[i] = entries[i]
	}
	sortByDepth(items)
	order := make([]int, n)
	for i, it := range items {
		order[n-1-i] = it.(entry).id
	}

	t := &tail{}
	if binary {
		t.endFlags = newBitVector()
	}

	var prevBytes []byte
	prevOffset := uint32(0)
	havePrev := false

	for _, idx := range order {
		s := suffixes[idx].bytes

		if havePrev && isSuffixOf(s, prevBytes) {
			offsets[idx] = prevOffset + uint32(len(prevBytes)-len(s))
			continue
		}

		offset := uint32(len(t.buf))
		t.buf = append(t.buf, s...)
		if binary {
			for range s {
				t.endFlags.PushBack(false)
			}
			if len(s) > 0 {
				setLast := t.endFlags.size - 1
				// mark the last byte of this suffix; PushBack only
				// appends zero bits so flip it directly on the
				// backing word before Build freezes the vector.
				t.endFlags.units[setLast/wordBits] |= uint64(1) << uint(setLast%wordBits)
				t.endFlags.num1s++
			}
		} else {
			t.buf = append(t.buf, 0)
		}

		offsets[idx] = offset
		prevBytes = s
		prevOffset = offset
		havePrev = true
	}

	if binary {
		t.endFlags.Build(false, false)
	}

	return t, offsets
}

// isSuffixOf reports whether a is a (possibly equal) suffix of b.
func isSuffixOf(a, b []byte) bool {
	if len(a) > len(b) {
		return false
	}
	off := len(b) - len(a)
	for i := range a {
		if a[i] != b[off+i] {
			return false
		}
	}
	return true
}

package marisa

import "github.com/pkg/errors"

// maxKeyLength is the largest key Build will accept: a link's extra
// bits cap a trie level at 2^32 distinct nodes, and a single key
// longer than that could never be told apart from a key that differs
// only past this length.
const maxKeyLength = 1<<32 - 1

// keysetEntry is one key collected by a Keyset, before it has been
// assigned a dense id by Build.
type keysetEntry struct {
	bytes  []byte
	weight float32
	id     uint32
}

// Keyset collects the (bytes, weight) pairs that Build turns into a
// Trie. Unlike the reference implementation's block-allocated arena
// (needed there to keep raw pointers stable), a Go Keyset is a plain
// growable slice -- the garbage collector already gives every pushed
// key's backing array a stable address for as long as the Keyset
// holds a reference to it.
type Keyset struct {
	entries     []keysetEntry
	totalLength int
}

// NewKeyset returns an empty Keyset.
func NewKeyset() *Keyset {
	return &Keyset{}
}

// PushBackString adds s with the default weight of 1.0.
func (ks *Keyset) PushBackString(s string) error {
	return ks.PushBackWeighted([]byte(s), 1.0)
}

// PushBackBytes adds key with the default weight of 1.0.
func (ks *Keyset) PushBackBytes(key []byte) error {
	return ks.PushBackWeighted(key, 1.0)
}

// PushBackWeighted adds key with an explicit weight, used by
// NodeOrderWeight to favor heavier keys as earlier siblings. The key
// is copied, so the caller's slice may be reused or modified
// afterwards.
func (ks *Keyset) PushBackWeighted(key []byte, weight float32) error {
	if len(key) > maxKeyLength {
		return errors.Errorf("marisa: key of length %d exceeds the maximum of %d", len(key), maxKeyLength)
	}
	stored := append([]byte(nil), key...)
	ks.entries = append(ks.entries, keysetEntry{bytes: stored, weight: weight})
	ks.totalLength += len(key)
	return nil
}

// Get returns the i-th key's bytes, weight, and (once Build has run)
// its dense id.
func (ks *Keyset) Get(i int) (bytes []byte, weight float32, id uint32) {
	e := ks.entries[i]
	return e.bytes, e.weight, e.id
}

func (ks *Keyset) setID(i int, id uint32) { ks.entries[i].id = id }

// NumKeys reports how many keys have been pushed.
func (ks *Keyset) NumKeys() int { return len(ks.entries) }

// Empty reports whether the keyset holds no keys.
func (ks *Keyset) Empty() bool { return len(ks.entries) == 0 }

// TotalLength reports the summed byte length of every pushed key.
func (ks *Keyset) TotalLength() int { return ks.totalLength }

// Reset discards every pushed key, keeping the underlying storage for
// reuse.
func (ks *Keyset) Reset() {
	ks.entries = ks.entries[:0]
	ks.totalLength = 0
}

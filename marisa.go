package marisa

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Trie is a static, space-efficient string dictionary: a thin public
// wrapper around a recursively-nested loudsTrie, mirroring
// original_source's Trie/LoudsTrie split. A zero-value Trie is not
// built; until Build, Load or Mmap has run, Save and WriteTo return an
// error, Close does nothing, and every other operation panics.
type Trie struct {
	root   *loudsTrie
	cfg    Config
	mapped []byte // non-nil if the trie was loaded via Mmap, to be unmapped on Close
}

// NewTrie returns an empty, unbuilt Trie.
func NewTrie() *Trie {
	return &Trie{}
}

func (t *Trie) requireBuilt() {
	if t.root == nil {
		panic("marisa: trie is not built")
	}
}

// Build constructs the trie from ks's keys using cfg, writing each
// key's dense id back into ks via Keyset.Get.
func (t *Trie) Build(ks *Keyset, cfg Config) {
	keys := make([]buildKey, ks.NumKeys())
	for i := range keys {
		b, w, _ := ks.Get(i)
		keys[i] = buildKey{bytes: b, weight: w, index: i}
	}
	root, ids := buildTrieLevel(keys, cfg, 1)
	for i, id := range ids {
		ks.setID(i, id)
	}
	t.root = root
	t.cfg = cfg
}

// NumKeys reports how many keys the trie holds.
func (t *Trie) NumKeys() uint32 {
	t.requireBuilt()
	return t.root.numKeys()
}

// Config reports the configuration the trie was built (or loaded)
// with.
func (t *Trie) Config() Config {
	t.requireBuilt()
	return t.cfg
}

// Lookup performs an exact-match search for a's query, recording the
// match (if any) as a's result key. Reports whether a match was
// found.
func (t *Trie) Lookup(a *Agent) bool {
	t.requireBuilt()
	return t.root.lookup(a)
}

// ReverseLookup restores the key for a's query id into a's result
// key. Panics if the id is out of range.
func (t *Trie) ReverseLookup(a *Agent) {
	t.requireBuilt()
	t.root.reverseLookup(a)
}

// CommonPrefixSearch advances a's common-prefix-search iterator by
// one step, reporting whether a further prefix match was found.
func (t *Trie) CommonPrefixSearch(a *Agent) bool {
	t.requireBuilt()
	return t.root.commonPrefixSearch(a)
}

// PredictiveSearch advances a's predictive-search iterator by one
// step, reporting whether a further match was found.
func (t *Trie) PredictiveSearch(a *Agent) bool {
	t.requireBuilt()
	return t.root.predictiveSearch(a)
}

// Save writes the trie to filename in the layout WriteTo produces.
func (t *Trie) Save(filename string) error {
	if t.root == nil {
		return errors.New("marisa: trie is not built")
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "marisa: failed to create trie file")
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := t.WriteTo(bw); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "marisa: failed to flush trie file")
}

// WriteTo writes the trie's on-disk representation to w: the header,
// the config flags, then each level as writeTrieLevel frames it. This
// layout is the one Load and Mmap read back; its field order differs
// from the original MARISA file format, so files are not
// interchangeable with other MARISA implementations.
func (t *Trie) WriteTo(w io.Writer) error {
	if t.root == nil {
		return errors.New("marisa: trie is not built")
	}
	iw := newIOWriter(w)
	if err := writeHeader(iw); err != nil {
		return err
	}
	if err := iw.writeU32(t.cfg.Flags()); err != nil {
		return err
	}
	return writeTrieLevel(iw, t.root)
}

// Load reads a trie previously written by Save.
func (t *Trie) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "marisa: failed to open trie file")
	}
	defer f.Close()
	ir := newIOReader(bufio.NewReader(f))
	if err := readHeader(ir); err != nil {
		return err
	}
	flags, err := ir.readU32()
	if err != nil {
		return err
	}
	cfg, err := ParseConfig(flags)
	if err != nil {
		return err
	}
	root, err := readTrieLevel(ir, cfg, 1)
	if err != nil {
		return err
	}
	t.root = root
	t.cfg = cfg
	return nil
}

// Mmap memory-maps filename and reads the trie from the mapped bytes.
// The trie's structures are decoded into copies; they do not
// reference the mapping. Call Close to release the mapping.
func (t *Trie) Mmap(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "marisa: failed to open trie file")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "marisa: failed to stat trie file")
	}
	if st.Size() == 0 {
		return errors.New("marisa: cannot mmap an empty file")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return errors.Wrap(err, "marisa: mmap failed")
	}

	ir := newIOReader(bytes.NewReader(data))
	if err := readHeader(ir); err != nil {
		_ = unix.Munmap(data)
		return err
	}
	flags, err := ir.readU32()
	if err != nil {
		_ = unix.Munmap(data)
		return err
	}
	cfg, err := ParseConfig(flags)
	if err != nil {
		_ = unix.Munmap(data)
		return err
	}
	root, err := readTrieLevel(ir, cfg, 1)
	if err != nil {
		_ = unix.Munmap(data)
		return err
	}

	t.root = root
	t.cfg = cfg
	t.mapped = data
	return nil
}

// Close releases the mapping opened by Mmap. It is a no-op for a trie
// built or loaded any other way.
func (t *Trie) Close() error {
	if t.mapped == nil {
		return nil
	}
	err := unix.Munmap(t.mapped)
	t.mapped = nil
	return errors.Wrap(err, "marisa: munmap failed")
}

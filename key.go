package marisa

// resultKey is the output side of an Agent: the key bytes found by a
// search operation (which may borrow from the query buffer, the
// search state's key buffer, or be freshly allocated) plus its dense
// id.
type resultKey struct {
	bytes []byte
	id    uint32
}

func (k *resultKey) setBytes(b []byte) { k.bytes = b }
func (k *resultKey) setID(id uint32)   { k.id = id }

func (k *resultKey) asBytes() []byte  { return k.bytes }
func (k *resultKey) asString() string { return string(k.bytes) }
func (k *resultKey) idValue() uint32  { return k.id }
func (k *resultKey) length() int      { return len(k.bytes) }

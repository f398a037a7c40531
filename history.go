package marisa

const invalidLinkID = ^uint32(0)
const invalidKeyID = ^uint32(0)

// history is one frame of the predictive-search DFS stack: the state
// needed to resume iterating a node's remaining siblings and to
// truncate the result key buffer back to that node's prefix.
type history struct {
	nodeID   uint32
	loudsPos uint32
	keyPos   uint32
	linkID   uint32
	keyID    uint32
}

func newHistory() history {
	return history{linkID: invalidLinkID, keyID: invalidKeyID}
}

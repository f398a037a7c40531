package marisa

// nodeRange is a BFS work item during LOUDS emission: the half-open
// slice [begin, end) of the current key ordering that shares a common
// prefix up to keyPos bytes.
type nodeRange struct {
	begin, end int
	keyPos     int
}

// weightedGroup is a contiguous group of keys within a nodeRange that
// share the same next byte, carrying the summed weight of the group
// (used to order siblings when node_order == Weight).
type weightedGroup struct {
	begin, end int
	weight     float32
}

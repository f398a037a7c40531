package marisa

// Agent is a reusable search cursor. It carries the query for a
// search operation, the result key from the last successful
// operation, and (lazily) the extra state multi-step searches need:
// a key-reconstruction buffer, a DFS history stack, and a cursor
// position.
//
// A single Agent may be reused across many searches; replacing the
// query resets any in-progress common-prefix or predictive search
// back to ReadyToAll.
type Agent struct {
	query query
	key   resultKey
	state *searchState
}

// NewAgent returns an empty Agent ready to have its query set.
func NewAgent() *Agent {
	return &Agent{}
}

// Clone returns a deep copy of the agent. If the agent's result key
// currently points into its own state buffer (as happens mid
// predictive search), the clone's key is re-pointed at the clone's
// own buffer rather than aliasing the original.
func (a *Agent) Clone() *Agent {
	clone := &Agent{
		query: query{bytes: append([]byte(nil), a.query.bytes...), id: a.query.id, hasID: a.query.hasID},
		key:   resultKey{bytes: append([]byte(nil), a.key.bytes...), id: a.key.id},
	}
	if a.state != nil {
		clone.state = a.state.clone()
		switch clone.state.status {
		case statusReadyToPredictiveSearch, statusEndOfPredictiveSearch:
			clone.key.setBytes(clone.state.keyBuf)
		}
	}
	return clone
}

// SetQueryString sets the query to a string, resetting any in-progress
// search state.
func (a *Agent) SetQueryString(s string) {
	if a.state != nil {
		a.state.reset()
	}
	a.query.setString(s)
}

// SetQueryBytes sets the query to a byte slice, resetting any
// in-progress search state.
func (a *Agent) SetQueryBytes(b []byte) {
	if a.state != nil {
		a.state.reset()
	}
	a.query.setBytes(b)
}

// SetQueryID sets the query to a key id, for ReverseLookup.
func (a *Agent) SetQueryID(id uint32) {
	if a.state != nil {
		a.state.reset()
	}
	a.query.setID(id)
}

// Key returns the result of the last successful search operation.
func (a *Agent) Key() []byte   { return a.key.asBytes() }
func (a *Agent) KeyID() uint32 { return a.key.idValue() }

func (a *Agent) hasState() bool { return a.state != nil }

func (a *Agent) initState() {
	if a.state != nil {
		panic("marisa: agent state already initialized")
	}
	a.state = newSearchState()
}

func (a *Agent) ensureState() *searchState {
	if a.state == nil {
		a.initState()
	}
	return a.state
}

func (a *Agent) setKeyFromState() {
	a.key.setBytes(a.state.keyBuf)
}

func (a *Agent) setKeyFromQuery() {
	a.key.setBytes(a.query.asBytes())
}

func (a *Agent) setKeyFromQueryPrefix(length int) {
	b := a.query.asBytes()
	if length > len(b) {
		panic("marisa: prefix length out of bounds")
	}
	a.key.setBytes(b[:length])
}

// Clear resets the agent to its zero state.
func (a *Agent) Clear() {
	*a = Agent{}
}

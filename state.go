package marisa

// statusCode tracks where an agent's external-state iterator is in
// the common-prefix-search / predictive-search state machine
// described in spec.md section 4.6.
type statusCode int

const (
	statusReadyToAll statusCode = iota
	statusReadyToCommonPrefixSearch
	statusReadyToPredictiveSearch
	statusEndOfCommonPrefixSearch
	statusEndOfPredictiveSearch
)

// searchState is the heap-allocated, lazily-initialized state an
// Agent carries for multi-step search operations (common-prefix and
// predictive search, and the key buffer used by reverse lookup).
type searchState struct {
	keyBuf     []byte
	history    []history
	nodeID     uint32
	queryPos   uint32
	historyPos uint32
	status     statusCode
}

func newSearchState() *searchState {
	return &searchState{status: statusReadyToAll}
}

func (s *searchState) clone() *searchState {
	c := &searchState{
		keyBuf:     append([]byte(nil), s.keyBuf...),
		history:    append([]history(nil), s.history...),
		nodeID:     s.nodeID,
		queryPos:   s.queryPos,
		historyPos: s.historyPos,
		status:     s.status,
	}
	return c
}

// reset returns the state to ReadyToAll, as happens whenever the
// agent's query changes mid-search.
func (s *searchState) reset() {
	s.keyBuf = s.keyBuf[:0]
	s.history = s.history[:0]
	s.nodeID = 0
	s.queryPos = 0
	s.historyPos = 0
	s.status = statusReadyToAll
}

func (s *searchState) lookupInit() {
	s.reset()
}

func (s *searchState) reverseLookupInit() {
	s.reset()
	s.keyBuf = make([]byte, 0, 32)
}

func (s *searchState) commonPrefixSearchInit() {
	s.reset()
	s.status = statusReadyToCommonPrefixSearch
}

func (s *searchState) predictiveSearchInit() {
	s.reset()
	s.keyBuf = make([]byte, 0, 64)
	s.history = make([]history, 0, 4)
	s.status = statusReadyToPredictiveSearch
}

package scriptgraph

// Handle describes one connectable port on a node. Handles are computed on
// demand from node data, never persisted. IDs are unique within a node's
// input set or output set, not necessarily across both.
type Handle struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  LuauType `json:"type"`
}

// HandleSet is a node's resolved port set for its current configuration.
// Both slices are always non-nil, possibly empty.
type HandleSet struct {
	Inputs  []Handle `json:"inputs"`
	Outputs []Handle `json:"outputs"`
}

// Input looks up an input handle by id.
func (hs HandleSet) Input(id string) (Handle, bool) {
	for _, h := range hs.Inputs {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// Output looks up an output handle by id.
func (hs HandleSet) Output(id string) (Handle, bool) {
	for _, h := range hs.Outputs {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

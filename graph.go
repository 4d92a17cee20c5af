package scriptgraph

import (
	"github.com/google/uuid"
)

// cloneOffset is how far a cloned node is shifted on the canvas so it does
// not cover the original.
const cloneOffset = 24

// Graph is the full node/edge aggregate for one script. It is owned and
// mutated by a single editor instance at a time; there is no internal
// locking.
type Graph struct {
	ScriptID string `json:"scriptId,omitempty"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// NewGraph builds a fresh graph for a script, containing only the mandatory
// entry node.
func NewGraph(scriptID string, r Resolver) *Graph {
	g := &Graph{ScriptID: scriptID, Nodes: []Node{}, Edges: []Edge{}}
	_, _ = g.AddNode(r, EntryKind, 0, 0)
	return g
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns the edge with the given id, or nil.
func (g *Graph) Edge(id string) *Edge {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}

// AddNode appends a new node of the given kind at the given canvas position,
// with a fresh id, the kind's default data, and the owning script recorded
// on the node. Returns ErrUnknownKind for unregistered kinds.
func (g *Graph) AddNode(r Resolver, kind string, x, y float64) (*Node, error) {
	data, ok := r.Defaults(kind)
	if !ok {
		return nil, ErrUnknownKind
	}
	g.Nodes = append(g.Nodes, Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		X:        x,
		Y:        y,
		ScriptID: g.ScriptID,
		Data:     data,
	})
	return &g.Nodes[len(g.Nodes)-1], nil
}

// Connect validates the proposed edge and, on acceptance, creates it with
// the observed handle types recorded. A refusal is not an error: the edge
// is nil and the verdict carries the reason. Unknown node ids return
// ErrNodeNotFound.
func (g *Graph) Connect(r Resolver, source, sourceHandle, target, targetHandle string) (*Edge, Verdict, error) {
	src := g.Node(source)
	tgt := g.Node(target)
	if src == nil || tgt == nil {
		return nil, Verdict{}, ErrNodeNotFound
	}

	v := ValidateConnection(r, *src, sourceHandle, *tgt, targetHandle)
	if !v.OK {
		return nil, v, nil
	}

	g.Edges = append(g.Edges, Edge{
		ID:           uuid.NewString(),
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: targetHandle,
		SourceType:   v.SourceType,
		TargetType:   v.TargetType,
	})
	return &g.Edges[len(g.Edges)-1], v, nil
}

// AddNodeAndConnect handles a connection drag released over empty canvas:
// the chosen kind is instantiated at the drop position, then an edge to the
// drag's origin is attempted against each candidate handle on the new node
// in declaration order. When the drag started on an output
// (originIsSource), candidates are the new node's inputs; otherwise its
// outputs. The node is kept even when no candidate is compatible, in which
// case the returned edge is nil.
func (g *Graph) AddNodeAndConnect(r Resolver, kind string, x, y float64, origin, originHandle string, originIsSource bool) (*Node, *Edge, error) {
	if g.Node(origin) == nil {
		return nil, nil, ErrNodeNotFound
	}
	node, err := g.AddNode(r, kind, x, y)
	if err != nil {
		return nil, nil, err
	}

	hs, _ := r.Handles(node.Kind, node.Data)
	if originIsSource {
		for _, in := range hs.Inputs {
			if e, v, err := g.Connect(r, origin, originHandle, node.ID, in.ID); err == nil && v.OK {
				return node, e, nil
			}
		}
	} else {
		for _, out := range hs.Outputs {
			if e, v, err := g.Connect(r, node.ID, out.ID, origin, originHandle); err == nil && v.OK {
				return node, e, nil
			}
		}
	}
	return node, nil, nil
}

// DeleteNode removes a node and every edge touching it. The entry node is
// protected and returns ErrEntryProtected.
func (g *Graph) DeleteNode(id string) error {
	n := g.Node(id)
	if n == nil {
		return ErrNodeNotFound
	}
	if n.Kind == EntryKind {
		return ErrEntryProtected
	}

	nodes := g.Nodes[:0]
	for _, node := range g.Nodes {
		if node.ID != id {
			nodes = append(nodes, node)
		}
	}
	g.Nodes = nodes

	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}
	g.Edges = edges
	return nil
}

// CloneNode duplicates a node's kind and data verbatim under a fresh id,
// offset on the canvas. Incident edges are not duplicated.
func (g *Graph) CloneNode(id string) (*Node, error) {
	n := g.Node(id)
	if n == nil {
		return nil, ErrNodeNotFound
	}
	g.Nodes = append(g.Nodes, Node{
		ID:       uuid.NewString(),
		Kind:     n.Kind,
		X:        n.X + cloneOffset,
		Y:        n.Y + cloneOffset,
		ScriptID: n.ScriptID,
		Data:     CloneData(n.Data),
	})
	return &g.Nodes[len(g.Nodes)-1], nil
}

// DeleteEdge removes a single edge by id.
func (g *Graph) DeleteEdge(id string) error {
	for i, e := range g.Edges {
		if e.ID == id {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return nil
		}
	}
	return ErrEdgeNotFound
}

// SetNodeData replaces a node's data payload and prunes incident edges that
// the new configuration invalidates: an edge is removed when its handle id
// on this node's side no longer resolves, or when the resolved type is no
// longer compatible with the type recorded on the edge's far side. The
// pruned edges are returned so the caller can report them.
func (g *Graph) SetNodeData(r Resolver, id string, data map[string]any) ([]Edge, error) {
	n := g.Node(id)
	if n == nil {
		return nil, ErrNodeNotFound
	}
	n.Data = data

	hs, ok := r.Handles(n.Kind, n.Data)
	if !ok {
		return nil, ErrUnknownKind
	}

	var pruned []Edge
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Survives(hs, id) {
			kept = append(kept, e)
		} else {
			pruned = append(pruned, e)
		}
	}
	g.Edges = kept
	return pruned, nil
}

// Survives reports whether the edge remains valid after the node with the
// given id re-resolves to the handle set hs: its handle id on that side
// must still exist and the resolved type must still be compatible with the
// type recorded for the far side. Edges not touching the node survive
// trivially.
func (e Edge) Survives(hs HandleSet, nodeID string) bool {
	if e.Source == nodeID {
		h, ok := hs.Output(e.SourceHandle)
		if !ok || !h.Type.CompatibleWith(e.TargetType) {
			return false
		}
	}
	if e.Target == nodeID {
		h, ok := hs.Input(e.TargetHandle)
		if !ok || !e.SourceType.CompatibleWith(h.Type) {
			return false
		}
	}
	return true
}

// CloneData deep-copies a node data payload. Payloads come from JSON, so
// only maps, slices, and scalars occur.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return CloneData(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Package memstore provides an ephemeral, thread-safe, in-memory
// implementation of scriptgraph.Store. It keeps whole graphs per script id
// and is suitable for tests and local development; nothing survives the
// process.
package memstore

import (
	"context"
	"sync"

	"github.com/flowlua/scriptgraph"
	"github.com/google/uuid"
)

// Store is an in-memory scriptgraph.Store guarded by a single RWMutex.
// The workload is read-mostly (every connection drag resolves handles, but
// saves are debounced), so one lock is enough.
type Store struct {
	mu     sync.RWMutex
	graphs map[string]*scriptgraph.Graph
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{graphs: make(map[string]*scriptgraph.Graph)}
}

// CreateSchema is a no-op; the maps are created by New.
func (s *Store) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards all stored graphs.
func (s *Store) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs = make(map[string]*scriptgraph.Graph)
	return nil
}

// SaveGraph stores a deep copy of the graph under its script id, replacing
// whatever was there. Nodes and edges without ids get fresh UUIDs, mirrored
// back onto the argument.
func (s *Store) SaveGraph(ctx context.Context, g *scriptgraph.Graph) (*scriptgraph.Graph, error) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == "" {
			g.Nodes[i].ID = uuid.NewString()
		}
	}
	for i := range g.Edges {
		if g.Edges[i].ID == "" {
			g.Edges[i].ID = uuid.NewString()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[g.ScriptID] = cloneGraph(g)
	return g, nil
}

// LoadGraph returns a deep copy of the stored graph, or nil, nil when the
// script has none.
func (s *Store) LoadGraph(ctx context.Context, scriptID string) (*scriptgraph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[scriptID]
	if !ok {
		return nil, nil
	}
	return cloneGraph(g), nil
}

// DeleteGraph removes a script's graph. No error if absent.
func (s *Store) DeleteGraph(ctx context.Context, scriptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.graphs, scriptID)
	return nil
}

// AddNode appends a node to a script's graph, creating the graph record if
// the script has none yet.
func (s *Store) AddNode(ctx context.Context, scriptID string, node *scriptgraph.Node) (string, error) {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[scriptID]
	if !ok {
		g = &scriptgraph.Graph{ScriptID: scriptID, Nodes: []scriptgraph.Node{}, Edges: []scriptgraph.Edge{}}
		s.graphs[scriptID] = g
	}
	n := *node
	n.Data = scriptgraph.CloneData(node.Data)
	g.Nodes = append(g.Nodes, n)
	return node.ID, nil
}

// GetNode fetches a node by id across all graphs. Returns nil, nil if not
// found.
func (s *Store) GetNode(ctx context.Context, nodeID string) (*scriptgraph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.graphs {
		if n := g.Node(nodeID); n != nil {
			out := *n
			out.Data = scriptgraph.CloneData(n.Data)
			return &out, nil
		}
	}
	return nil, nil
}

// UpdateNode replaces a node's data and position. Returns ErrNodeNotFound
// if no graph contains it.
func (s *Store) UpdateNode(ctx context.Context, node *scriptgraph.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.graphs {
		if n := g.Node(node.ID); n != nil {
			n.X, n.Y = node.X, node.Y
			n.Data = scriptgraph.CloneData(node.Data)
			return nil
		}
	}
	return scriptgraph.ErrNodeNotFound
}

// DeleteNode removes a node and cascades to its incident edges. No error if
// the node doesn't exist.
func (s *Store) DeleteNode(ctx context.Context, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.graphs {
		if g.Node(nodeID) == nil {
			continue
		}
		nodes := g.Nodes[:0]
		for _, n := range g.Nodes {
			if n.ID != nodeID {
				nodes = append(nodes, n)
			}
		}
		g.Nodes = nodes

		edges := g.Edges[:0]
		for _, e := range g.Edges {
			if e.Source != nodeID && e.Target != nodeID {
				edges = append(edges, e)
			}
		}
		g.Edges = edges
		return nil
	}
	return nil
}

// ListNodes returns all nodes for a script, in insertion order. Empty slice
// (not nil) when none.
func (s *Store) ListNodes(ctx context.Context, scriptID string) ([]scriptgraph.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[scriptID]
	if !ok {
		return []scriptgraph.Node{}, nil
	}
	return cloneGraph(g).Nodes, nil
}

// AddEdge appends an edge to a script's graph.
func (s *Store) AddEdge(ctx context.Context, scriptID string, edge *scriptgraph.Edge) (string, error) {
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[scriptID]
	if !ok {
		return "", scriptgraph.ErrNodeNotFound
	}
	g.Edges = append(g.Edges, *edge)
	return edge.ID, nil
}

// GetEdge fetches an edge by id across all graphs. Returns nil, nil if not
// found.
func (s *Store) GetEdge(ctx context.Context, edgeID string) (*scriptgraph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.graphs {
		if e := g.Edge(edgeID); e != nil {
			out := *e
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteEdge removes a single edge. No error if the edge doesn't exist.
func (s *Store) DeleteEdge(ctx context.Context, edgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.graphs {
		for i, e := range g.Edges {
			if e.ID == edgeID {
				g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// ListEdges returns all edges for a script, in insertion order. Empty slice
// (not nil) when none.
func (s *Store) ListEdges(ctx context.Context, scriptID string) ([]scriptgraph.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[scriptID]
	if !ok {
		return []scriptgraph.Edge{}, nil
	}
	return cloneGraph(g).Edges, nil
}

func cloneGraph(g *scriptgraph.Graph) *scriptgraph.Graph {
	out := &scriptgraph.Graph{
		ScriptID: g.ScriptID,
		Nodes:    make([]scriptgraph.Node, len(g.Nodes)),
		Edges:    make([]scriptgraph.Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		n.Data = scriptgraph.CloneData(n.Data)
		out.Nodes[i] = n
	}
	copy(out.Edges, g.Edges)
	return out
}

// Package editor owns the live graph for one open script. Exactly one
// session exists per script at a time; every accepted mutation notifies the
// debounced autosaver. Closing the session is the "switching scripts"
// teardown and flushes a final best-effort save.
package editor

import (
	"context"

	"github.com/flowlua/scriptgraph"
	"github.com/flowlua/scriptgraph/autosave"
	"github.com/flowlua/scriptgraph/nodetype"
)

// Session is the editing surface over one script's graph.
type Session struct {
	reg   *nodetype.Registry
	graph *scriptgraph.Graph
	saver *autosave.Saver
}

// Open loads the script's persisted graph, or synthesizes a fresh one
// containing only the entry node when the script has none.
func Open(ctx context.Context, store scriptgraph.Store, saver *autosave.Saver, reg *nodetype.Registry, scriptID string) (*Session, error) {
	g, err := store.LoadGraph(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = scriptgraph.NewGraph(scriptID, reg)
	}
	return &Session{reg: reg, graph: g, saver: saver}, nil
}

// Graph exposes the live graph. Callers must not mutate it directly.
func (s *Session) Graph() *scriptgraph.Graph { return s.graph }

// AddNode places a new node of the given kind on the canvas.
func (s *Session) AddNode(kind string, x, y float64) (*scriptgraph.Node, error) {
	n, err := s.graph.AddNode(s.reg, kind, x, y)
	if err != nil {
		return nil, err
	}
	s.saver.Notify(s.graph)
	return n, nil
}

// Connect attempts to wire a source output handle to a target input handle.
// A refused connection is not an error; the verdict carries the reason and
// no save is scheduled.
func (s *Session) Connect(source, sourceHandle, target, targetHandle string) (*scriptgraph.Edge, scriptgraph.Verdict, error) {
	e, v, err := s.graph.Connect(s.reg, source, sourceHandle, target, targetHandle)
	if err == nil && v.OK {
		s.saver.Notify(s.graph)
	}
	return e, v, err
}

// AddNodeAndConnect handles a connection drag dropped on empty canvas: the
// node is always created, the edge only when a compatible handle exists.
func (s *Session) AddNodeAndConnect(kind string, x, y float64, origin, originHandle string, originIsSource bool) (*scriptgraph.Node, *scriptgraph.Edge, error) {
	n, e, err := s.graph.AddNodeAndConnect(s.reg, kind, x, y, origin, originHandle, originIsSource)
	if err != nil {
		return nil, nil, err
	}
	s.saver.Notify(s.graph)
	return n, e, nil
}

// DeleteNode removes a node and its incident edges. The entry node is
// protected.
func (s *Session) DeleteNode(id string) error {
	if err := s.graph.DeleteNode(id); err != nil {
		return err
	}
	s.saver.Notify(s.graph)
	return nil
}

// CloneNode duplicates a node without its edges.
func (s *Session) CloneNode(id string) (*scriptgraph.Node, error) {
	n, err := s.graph.CloneNode(id)
	if err != nil {
		return nil, err
	}
	s.saver.Notify(s.graph)
	return n, nil
}

// DeleteEdge removes a single edge.
func (s *Session) DeleteEdge(id string) error {
	if err := s.graph.DeleteEdge(id); err != nil {
		return err
	}
	s.saver.Notify(s.graph)
	return nil
}

// SetNodeData replaces a node's configuration after checking it against the
// kind's constraints. Incident edges invalidated by the new configuration
// are pruned and returned.
func (s *Session) SetNodeData(id string, data map[string]any) ([]scriptgraph.Edge, error) {
	n := s.graph.Node(id)
	if n == nil {
		return nil, scriptgraph.ErrNodeNotFound
	}
	if err := s.reg.ValidateData(n.Kind, data); err != nil {
		return nil, err
	}
	pruned, err := s.graph.SetNodeData(s.reg, id, data)
	if err != nil {
		return nil, err
	}
	s.saver.Notify(s.graph)
	return pruned, nil
}

// Close flushes a final best-effort save. The session must not be used
// afterwards.
func (s *Session) Close() {
	s.saver.Flush()
}

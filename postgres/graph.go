package postgres

import (
	"context"
	"fmt"

	"github.com/flowlua/scriptgraph"
	"github.com/google/uuid"
)

// SaveGraph persists a full script graph (nodes + edges) in one
// transaction, replacing whatever was previously stored for the script.
// Nodes/edges without IDs get auto-generated UUIDs. Returns the graph with
// all IDs filled in.
func (s *PGStore) SaveGraph(ctx context.Context, g *scriptgraph.Graph) (*scriptgraph.Graph, error) {
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

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("scriptgraph: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Delete existing graph data if any (replace semantics).
	if _, err := tx.Exec(ctx, `DELETE FROM script_edges WHERE script_id = $1`, g.ScriptID); err != nil {
		return nil, fmt.Errorf("scriptgraph: delete edges: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM script_nodes WHERE script_id = $1`, g.ScriptID); err != nil {
		return nil, fmt.Errorf("scriptgraph: delete nodes: %w", err)
	}

	for _, n := range g.Nodes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO script_nodes (id, script_id, kind, pos_x, pos_y, data) VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, g.ScriptID, n.Kind, n.X, n.Y, n.Data,
		); err != nil {
			return nil, fmt.Errorf("scriptgraph: insert node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		if _, err := tx.Exec(ctx,
			`INSERT INTO script_edges (id, script_id, source_id, source_handle, target_id, target_handle, source_type, target_type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, g.ScriptID, e.Source, e.SourceHandle, e.Target, e.TargetHandle, string(e.SourceType), string(e.TargetType),
		); err != nil {
			return nil, fmt.Errorf("scriptgraph: insert edge %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("scriptgraph: commit: %w", err)
	}

	return g, nil
}

// LoadGraph retrieves a full script graph (nodes + edges) by script ID.
// Returns nil, nil if no nodes exist for the script.
func (s *PGStore) LoadGraph(ctx context.Context, scriptID string) (*scriptgraph.Graph, error) {
	g := &scriptgraph.Graph{ScriptID: scriptID}

	nodes, err := s.ListNodes(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	g.Nodes = nodes

	edges, err := s.ListEdges(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	g.Edges = edges

	return g, nil
}

// DeleteGraph removes all nodes and edges for a script.
// No error if the script has no graph.
func (s *PGStore) DeleteGraph(ctx context.Context, scriptID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("scriptgraph: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM script_edges WHERE script_id = $1`, scriptID); err != nil {
		return fmt.Errorf("scriptgraph: delete edges: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM script_nodes WHERE script_id = $1`, scriptID); err != nil {
		return fmt.Errorf("scriptgraph: delete nodes: %w", err)
	}

	return tx.Commit(ctx)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/flowlua/scriptgraph"
	"github.com/google/uuid"
)

// AddEdge inserts a single edge into a script graph.
// If edge.ID is empty, a UUID is auto-generated.
// The edge's recorded handle types are stored as observed at connection
// time; connection validation happens at the editor layer, not here.
// Returns the edge ID (generated or provided).
func (s *PGStore) AddEdge(ctx context.Context, scriptID string, edge *scriptgraph.Edge) (string, error) {
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO script_edges (id, script_id, source_id, source_handle, target_id, target_handle, source_type, target_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		edge.ID, scriptID, edge.Source, edge.SourceHandle, edge.Target, edge.TargetHandle,
		string(edge.SourceType), string(edge.TargetType),
	)
	if err != nil {
		return "", fmt.Errorf("scriptgraph: insert edge: %w", err)
	}

	return edge.ID, nil
}

// GetEdge fetches a single edge by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetEdge(ctx context.Context, edgeID string) (*scriptgraph.Edge, error) {
	var e scriptgraph.Edge
	err := s.db.QueryRow(ctx,
		`SELECT id, source_id, source_handle, target_id, target_handle, source_type, target_type
		 FROM script_edges WHERE id = $1`, edgeID,
	).Scan(&e.ID, &e.Source, &e.SourceHandle, &e.Target, &e.TargetHandle, &e.SourceType, &e.TargetType)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scriptgraph: get edge: %w", err)
	}

	return &e, nil
}

// DeleteEdge deletes an edge by its ID.
// No error if the edge doesn't exist.
func (s *PGStore) DeleteEdge(ctx context.Context, edgeID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM script_edges WHERE id = $1`, edgeID)
	if err != nil {
		return fmt.Errorf("scriptgraph: delete edge: %w", err)
	}
	return nil
}

// ListEdges returns all edges for a script, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListEdges(ctx context.Context, scriptID string) ([]scriptgraph.Edge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, source_id, source_handle, target_id, target_handle, source_type, target_type
		 FROM script_edges WHERE script_id = $1 ORDER BY created_at`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("scriptgraph: list edges: %w", err)
	}
	defer rows.Close()

	edges := []scriptgraph.Edge{}
	for rows.Next() {
		var e scriptgraph.Edge
		if err := rows.Scan(&e.ID, &e.Source, &e.SourceHandle, &e.Target, &e.TargetHandle, &e.SourceType, &e.TargetType); err != nil {
			return nil, fmt.Errorf("scriptgraph: scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scriptgraph: rows edges: %w", err)
	}

	return edges, nil
}

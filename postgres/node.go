package postgres

import (
	"context"
	"fmt"

	"github.com/flowlua/scriptgraph"
	"github.com/google/uuid"
)

// AddNode inserts a single node into a script graph.
// If node.ID is empty, a UUID is auto-generated.
// Returns the node ID (generated or provided).
func (s *PGStore) AddNode(ctx context.Context, scriptID string, node *scriptgraph.Node) (string, error) {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	node.ScriptID = scriptID

	_, err := s.db.Exec(ctx,
		`INSERT INTO script_nodes (id, script_id, kind, pos_x, pos_y, data) VALUES ($1, $2, $3, $4, $5, $6)`,
		node.ID, scriptID, node.Kind, node.X, node.Y, node.Data,
	)
	if err != nil {
		return "", fmt.Errorf("scriptgraph: insert node: %w", err)
	}

	return node.ID, nil
}

// GetNode fetches a single node by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetNode(ctx context.Context, nodeID string) (*scriptgraph.Node, error) {
	var n scriptgraph.Node
	err := s.db.QueryRow(ctx,
		`SELECT id, script_id, kind, pos_x, pos_y, data FROM script_nodes WHERE id = $1`, nodeID,
	).Scan(&n.ID, &n.ScriptID, &n.Kind, &n.X, &n.Y, &n.Data)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scriptgraph: get node: %w", err)
	}

	return &n, nil
}

// UpdateNode updates the position and data of an existing node.
// Returns ErrNodeNotFound if the node doesn't exist.
func (s *PGStore) UpdateNode(ctx context.Context, node *scriptgraph.Node) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE script_nodes SET pos_x = $1, pos_y = $2, data = $3 WHERE id = $4`,
		node.X, node.Y, node.Data, node.ID,
	)
	if err != nil {
		return fmt.Errorf("scriptgraph: update node: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return scriptgraph.ErrNodeNotFound
	}
	return nil
}

// DeleteNode deletes a node by its ID.
// Incident edges are cascade-deleted by the DB.
// No error if the node doesn't exist.
func (s *PGStore) DeleteNode(ctx context.Context, nodeID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM script_nodes WHERE id = $1`, nodeID)
	if err != nil {
		return fmt.Errorf("scriptgraph: delete node: %w", err)
	}
	return nil
}

// ListNodes returns all nodes for a script, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListNodes(ctx context.Context, scriptID string) ([]scriptgraph.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, script_id, kind, pos_x, pos_y, data FROM script_nodes WHERE script_id = $1 ORDER BY created_at`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("scriptgraph: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []scriptgraph.Node{}
	for rows.Next() {
		var n scriptgraph.Node
		if err := rows.Scan(&n.ID, &n.ScriptID, &n.Kind, &n.X, &n.Y, &n.Data); err != nil {
			return nil, fmt.Errorf("scriptgraph: scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scriptgraph: rows nodes: %w", err)
	}

	return nodes, nil
}

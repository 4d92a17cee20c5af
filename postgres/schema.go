package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS script_nodes (
    id         TEXT PRIMARY KEY,
    script_id  TEXT NOT NULL,
    kind       TEXT NOT NULL,
    pos_x      DOUBLE PRECISION NOT NULL DEFAULT 0,
    pos_y      DOUBLE PRECISION NOT NULL DEFAULT 0,
    data       JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS script_edges (
    id            TEXT PRIMARY KEY,
    script_id     TEXT NOT NULL,
    source_id     TEXT NOT NULL REFERENCES script_nodes(id) ON DELETE CASCADE,
    source_handle TEXT NOT NULL,
    target_id     TEXT NOT NULL REFERENCES script_nodes(id) ON DELETE CASCADE,
    target_handle TEXT NOT NULL,
    source_type   TEXT NOT NULL DEFAULT 'any',
    target_type   TEXT NOT NULL DEFAULT 'any',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_script_nodes_script_id ON script_nodes(script_id);
CREATE INDEX IF NOT EXISTS idx_script_edges_script_id ON script_edges(script_id);
CREATE INDEX IF NOT EXISTS idx_script_edges_source    ON script_edges(source_id);
CREATE INDEX IF NOT EXISTS idx_script_edges_target    ON script_edges(target_id);
`

// CreateSchema creates the script_nodes and script_edges tables if they
// don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the script_edges and script_nodes tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS script_edges, script_nodes CASCADE;`)
	return err
}

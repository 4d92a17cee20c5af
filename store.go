package scriptgraph

import (
	"context"
	"errors"
)

var (
	ErrNodeNotFound   = errors.New("scriptgraph: node not found")
	ErrEdgeNotFound   = errors.New("scriptgraph: edge not found")
	ErrUnknownKind    = errors.New("scriptgraph: unknown node kind")
	ErrEntryProtected = errors.New("scriptgraph: entry node cannot be deleted")
)

// Store defines the contract for persisting and retrieving script graphs.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Whole-graph (replace semantics)
	SaveGraph(ctx context.Context, g *Graph) (*Graph, error)
	LoadGraph(ctx context.Context, scriptID string) (*Graph, error)
	DeleteGraph(ctx context.Context, scriptID string) error

	// Nodes
	AddNode(ctx context.Context, scriptID string, node *Node) (string, error)
	GetNode(ctx context.Context, nodeID string) (*Node, error)
	UpdateNode(ctx context.Context, node *Node) error
	DeleteNode(ctx context.Context, nodeID string) error
	ListNodes(ctx context.Context, scriptID string) ([]Node, error)

	// Edges
	AddEdge(ctx context.Context, scriptID string, edge *Edge) (string, error)
	GetEdge(ctx context.Context, edgeID string) (*Edge, error)
	DeleteEdge(ctx context.Context, edgeID string) error
	ListEdges(ctx context.Context, scriptID string) ([]Edge, error)
}

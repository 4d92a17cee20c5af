package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/flowlua/scriptgraph"
)

type graphPayload struct {
	Nodes []scriptgraph.Node `json:"nodes"`
	Edges []scriptgraph.Edge `json:"edges"`
}

type createNodeRequest struct {
	Kind string  `json:"kind" validate:"required"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type updateNodeRequest struct {
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
	Data map[string]any `json:"data"`
}

type createEdgeRequest struct {
	Source       string `json:"source" validate:"required"`
	SourceHandle string `json:"sourceHandle" validate:"required"`
	Target       string `json:"target" validate:"required"`
	TargetHandle string `json:"targetHandle" validate:"required"`
}

// nodeTypeInfo feeds the editor palette: each registered kind with the
// handle set its default configuration resolves to.
type nodeTypeInfo struct {
	Kind     string                `json:"kind"`
	Defaults map[string]any        `json:"defaults"`
	Handles  scriptgraph.HandleSet `json:"handles"`
}

func (h *handlers) listNodeTypes(c fiber.Ctx) error {
	kinds := h.reg.Kinds()
	out := make([]nodeTypeInfo, 0, len(kinds))
	for _, kind := range kinds {
		defaults, _ := h.reg.Defaults(kind)
		hs, _ := h.reg.Handles(kind, defaults)
		out = append(out, nodeTypeInfo{Kind: kind, Defaults: defaults, Handles: hs})
	}
	return c.JSON(out)
}

// putGraph replaces the script's whole persisted graph with the submitted
// {nodes, edges} payload. The payload is stored as sent; graph-level
// invariants were enforced by the editor when the mutations happened.
func (h *handlers) putGraph(c fiber.Ctx) error {
	var p graphPayload
	if err := h.bind(c, &p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	g := &scriptgraph.Graph{ScriptID: c.Params("id"), Nodes: p.Nodes, Edges: p.Edges}
	saved, err := h.store.SaveGraph(c.Context(), g)
	if err != nil {
		return h.internal(c, "save graph", err)
	}
	return c.Status(201).JSON(saved)
}

// getGraph returns the script's graph. A script without one gets a fresh
// graph holding only the entry node; it is not persisted until saved.
func (h *handlers) getGraph(c fiber.Ctx) error {
	g, err := h.store.LoadGraph(c.Context(), c.Params("id"))
	if err != nil {
		return h.internal(c, "load graph", err)
	}
	if g == nil {
		g = scriptgraph.NewGraph(c.Params("id"), h.reg)
	}
	return c.JSON(g)
}

func (h *handlers) deleteGraph(c fiber.Ctx) error {
	if err := h.store.DeleteGraph(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "delete graph", err)
	}
	return c.SendStatus(204)
}

func (h *handlers) createNode(c fiber.Ctx) error {
	var req createNodeRequest
	if err := h.bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	data, ok := h.reg.Defaults(req.Kind)
	if !ok {
		return c.Status(422).JSON(fiber.Map{"error": "unknown node kind"})
	}
	node := &scriptgraph.Node{Kind: req.Kind, X: req.X, Y: req.Y, Data: data}
	id, err := h.store.AddNode(c.Context(), c.Params("id"), node)
	if err != nil {
		return h.internal(c, "add node", err)
	}
	return c.Status(201).JSON(fiber.Map{"id": id})
}

// updateNode replaces a node's position and data, then applies the
// prune-on-change policy: incident edges that the new configuration no
// longer resolves are deleted, and their ids are reported.
func (h *handlers) updateNode(c fiber.Ctx) error {
	var req updateNodeRequest
	if err := h.bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	node, err := h.store.GetNode(c.Context(), c.Params("id"))
	if err != nil {
		return h.internal(c, "get node", err)
	}
	if node == nil {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}
	if err := h.reg.ValidateData(node.Kind, req.Data); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	node.X, node.Y, node.Data = req.X, req.Y, req.Data
	if err := h.store.UpdateNode(c.Context(), node); err != nil {
		return h.internal(c, "update node", err)
	}

	pruned, err := h.pruneStaleEdges(c, node)
	if err != nil {
		return h.internal(c, "prune edges", err)
	}
	return c.JSON(fiber.Map{"pruned": pruned})
}

// pruneStaleEdges deletes the node's incident edges that do not survive its
// current handle set, returning the deleted edge ids.
func (h *handlers) pruneStaleEdges(c fiber.Ctx, node *scriptgraph.Node) ([]string, error) {
	hs, ok := h.reg.Handles(node.Kind, node.Data)
	if !ok {
		return nil, scriptgraph.ErrUnknownKind
	}
	edges, err := h.store.ListEdges(c.Context(), node.ScriptID)
	if err != nil {
		return nil, err
	}
	pruned := []string{}
	for _, e := range edges {
		if e.Survives(hs, node.ID) {
			continue
		}
		if err := h.store.DeleteEdge(c.Context(), e.ID); err != nil {
			return nil, err
		}
		pruned = append(pruned, e.ID)
	}
	return pruned, nil
}

func (h *handlers) deleteNode(c fiber.Ctx) error {
	node, err := h.store.GetNode(c.Context(), c.Params("id"))
	if err != nil {
		return h.internal(c, "get node", err)
	}
	if node != nil && node.Kind == scriptgraph.EntryKind {
		return c.Status(422).JSON(fiber.Map{"error": "entry node cannot be deleted"})
	}
	if err := h.store.DeleteNode(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "delete node", err)
	}
	return c.SendStatus(204)
}

func (h *handlers) cloneNode(c fiber.Ctx) error {
	node, err := h.store.GetNode(c.Context(), c.Params("id"))
	if err != nil {
		return h.internal(c, "get node", err)
	}
	if node == nil {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}

	clone := &scriptgraph.Node{
		Kind: node.Kind,
		X:    node.X + 24,
		Y:    node.Y + 24,
		Data: scriptgraph.CloneData(node.Data),
	}
	id, err := h.store.AddNode(c.Context(), node.ScriptID, clone)
	if err != nil {
		return h.internal(c, "add node", err)
	}
	return c.Status(201).JSON(fiber.Map{"id": id})
}

// createEdge runs the connection validator against both endpoints' current
// handle sets and stores the edge with the observed types on acceptance.
// A refusal is a 422 carrying the rejection reason.
func (h *handlers) createEdge(c fiber.Ctx) error {
	var req createEdgeRequest
	if err := h.bind(c, &req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	source, err := h.store.GetNode(c.Context(), req.Source)
	if err != nil {
		return h.internal(c, "get node", err)
	}
	target, err := h.store.GetNode(c.Context(), req.Target)
	if err != nil {
		return h.internal(c, "get node", err)
	}
	if source == nil || target == nil {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}

	v := scriptgraph.ValidateConnection(h.reg, *source, req.SourceHandle, *target, req.TargetHandle)
	if !v.OK {
		return c.Status(422).JSON(fiber.Map{"error": "connection rejected", "reason": v.Reason})
	}

	edge := &scriptgraph.Edge{
		Source:       req.Source,
		SourceHandle: req.SourceHandle,
		Target:       req.Target,
		TargetHandle: req.TargetHandle,
		SourceType:   v.SourceType,
		TargetType:   v.TargetType,
	}
	id, err := h.store.AddEdge(c.Context(), c.Params("id"), edge)
	if err != nil {
		return h.internal(c, "add edge", err)
	}
	return c.Status(201).JSON(fiber.Map{
		"id":         id,
		"sourceType": v.SourceType,
		"targetType": v.TargetType,
	})
}

func (h *handlers) deleteEdge(c fiber.Ctx) error {
	if err := h.store.DeleteEdge(c.Context(), c.Params("id")); err != nil {
		return h.internal(c, "delete edge", err)
	}
	return c.SendStatus(204)
}

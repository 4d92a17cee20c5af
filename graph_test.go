package scriptgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlua/scriptgraph"
	"github.com/flowlua/scriptgraph/nodetype"
)

func newTestGraph(t *testing.T) (*scriptgraph.Graph, *nodetype.Registry) {
	t.Helper()
	reg := nodetype.Builtin()
	return scriptgraph.NewGraph("script-1", reg), reg
}

func TestNewGraphHasEntryNode(t *testing.T) {
	g, _ := newTestGraph(t)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, scriptgraph.EntryKind, g.Nodes[0].Kind)
	assert.Equal(t, "script-1", g.Nodes[0].ScriptID)
	assert.NotEmpty(t, g.Nodes[0].ID)
	assert.Empty(t, g.Edges)
}

func TestAddNode(t *testing.T) {
	g, reg := newTestGraph(t)

	n, err := g.AddNode(reg, "arithmetic", 120, 80)
	require.NoError(t, err)
	assert.Equal(t, "arithmetic", n.Kind)
	assert.Equal(t, 120.0, n.X)
	assert.Equal(t, "script-1", n.ScriptID)
	assert.Equal(t, nodetype.ModeOperands, n.Data["mode"])

	_, err = g.AddNode(reg, "vector3", 0, 0)
	assert.ErrorIs(t, err, scriptgraph.ErrUnknownKind)
}

func TestConnectRecordsObservedTypes(t *testing.T) {
	g, reg := newTestGraph(t)

	num, err := g.AddNode(reg, "number", 0, 0)
	require.NoError(t, err)
	sum, err := g.AddNode(reg, "arithmetic", 200, 0)
	require.NoError(t, err)

	e, v, err := g.Connect(reg, num.ID, "value", sum.ID, "a")
	require.NoError(t, err)
	require.True(t, v.OK)
	require.NotNil(t, e)
	assert.Equal(t, scriptgraph.TypeNumber, e.SourceType)
	assert.Equal(t, scriptgraph.TypeNumber, e.TargetType)
	assert.NotEmpty(t, e.ID)
	assert.Len(t, g.Edges, 1)
}

func TestConnectRefusalCreatesNothing(t *testing.T) {
	g, reg := newTestGraph(t)

	flag, _ := g.AddNode(reg, "boolean", 0, 0)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 0)

	e, v, err := g.Connect(reg, flag.ID, "value", sum.ID, "b")
	require.NoError(t, err)
	assert.False(t, v.OK)
	assert.Nil(t, e)
	assert.Empty(t, g.Edges)

	_, _, err = g.Connect(reg, "missing", "value", sum.ID, "a")
	assert.ErrorIs(t, err, scriptgraph.ErrNodeNotFound)
}

func TestDeleteNodeCascades(t *testing.T) {
	g, reg := newTestGraph(t)

	a, _ := g.AddNode(reg, "number", 0, 0)
	b, _ := g.AddNode(reg, "number", 0, 80)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 40)
	printer, _ := g.AddNode(reg, "print", 400, 40)

	_, _, err := g.Connect(reg, a.ID, "value", sum.ID, "a")
	require.NoError(t, err)
	_, _, err = g.Connect(reg, b.ID, "value", sum.ID, "b")
	require.NoError(t, err)
	_, _, err = g.Connect(reg, sum.ID, "result", printer.ID, "value")
	require.NoError(t, err)
	require.Len(t, g.Edges, 3)

	require.NoError(t, g.DeleteNode(sum.ID))

	// All three edges touched the arithmetic node; none may dangle.
	assert.Empty(t, g.Edges)
	assert.Nil(t, g.Node(sum.ID))
	for _, e := range g.Edges {
		assert.NotNil(t, g.Node(e.Source))
		assert.NotNil(t, g.Node(e.Target))
	}
}

func TestDeleteNodeCascadesOnlyIncident(t *testing.T) {
	g, reg := newTestGraph(t)

	a, _ := g.AddNode(reg, "number", 0, 0)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 0)
	printer, _ := g.AddNode(reg, "print", 400, 0)
	str, _ := g.AddNode(reg, "string", 0, 100)
	printer2, _ := g.AddNode(reg, "print", 400, 100)

	g.Connect(reg, a.ID, "value", sum.ID, "a")
	g.Connect(reg, str.ID, "value", printer2.ID, "value")
	g.Connect(reg, sum.ID, "result", printer.ID, "value")
	require.Len(t, g.Edges, 3)

	require.NoError(t, g.DeleteNode(sum.ID))

	require.Len(t, g.Edges, 1)
	assert.Equal(t, str.ID, g.Edges[0].Source)
}

func TestDeleteEntryNodeRefused(t *testing.T) {
	g, _ := newTestGraph(t)

	err := g.DeleteNode(g.Nodes[0].ID)
	assert.ErrorIs(t, err, scriptgraph.ErrEntryProtected)
	assert.Len(t, g.Nodes, 1)

	err = g.DeleteNode("missing")
	assert.ErrorIs(t, err, scriptgraph.ErrNodeNotFound)
}

func TestCloneNode(t *testing.T) {
	g, reg := newTestGraph(t)

	num, _ := g.AddNode(reg, "number", 50, 50)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 50)
	g.Connect(reg, num.ID, "value", sum.ID, "a")

	clone, err := g.CloneNode(sum.ID)
	require.NoError(t, err)

	assert.NotEqual(t, sum.ID, clone.ID)
	assert.Equal(t, sum.Kind, clone.Kind)
	assert.Equal(t, sum.X+24, clone.X)
	assert.Equal(t, sum.Data, clone.Data)

	// Data is copied, not aliased.
	clone.Data["mode"] = nodetype.ModeExpression
	assert.Equal(t, nodetype.ModeOperands, g.Node(sum.ID).Data["mode"])

	// Incident edges are not duplicated.
	assert.Len(t, g.Edges, 1)

	_, err = g.CloneNode("missing")
	assert.ErrorIs(t, err, scriptgraph.ErrNodeNotFound)
}

func TestDeleteEdge(t *testing.T) {
	g, reg := newTestGraph(t)

	num, _ := g.AddNode(reg, "number", 0, 0)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 0)
	e, _, err := g.Connect(reg, num.ID, "value", sum.ID, "a")
	require.NoError(t, err)

	edgeID := e.ID
	require.NoError(t, g.DeleteEdge(edgeID))
	assert.Empty(t, g.Edges)

	// Nodes stay.
	assert.NotNil(t, g.Node(num.ID))

	assert.ErrorIs(t, g.DeleteEdge(edgeID), scriptgraph.ErrEdgeNotFound)
}

func TestAddNodeAndConnectAutoWires(t *testing.T) {
	g, reg := newTestGraph(t)

	num, _ := g.AddNode(reg, "number", 0, 0)

	// Dragging from the literal's output and picking "arithmetic" wires
	// the first compatible input, "a".
	n, e, err := g.AddNodeAndConnect(reg, "arithmetic", 300, 0, num.ID, "value", true)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, n.ID, e.Target)
	assert.Equal(t, "a", e.TargetHandle)
	assert.Equal(t, num.ID, e.Source)
}

func TestAddNodeAndConnectReverseDrag(t *testing.T) {
	g, reg := newTestGraph(t)

	sum, _ := g.AddNode(reg, "arithmetic", 300, 0)

	// Dragging backwards from the arithmetic "a" input and picking a
	// number literal wires the literal's output.
	n, e, err := g.AddNodeAndConnect(reg, "number", 0, 0, sum.ID, "a", false)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, n.ID, e.Source)
	assert.Equal(t, "value", e.SourceHandle)
	assert.Equal(t, sum.ID, e.Target)
}

func TestAddNodeAndConnectIncompatibleKeepsNode(t *testing.T) {
	g, reg := newTestGraph(t)

	flag, _ := g.AddNode(reg, "boolean", 0, 0)

	// No handle on an arithmetic node accepts a Boolean.
	n, e, err := g.AddNodeAndConnect(reg, "arithmetic", 300, 0, flag.ID, "value", true)
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.NotNil(t, g.Node(n.ID))
	assert.Empty(t, g.Edges)
}

func TestSetNodeDataPrunesStaleEdges(t *testing.T) {
	g, reg := newTestGraph(t)

	a, _ := g.AddNode(reg, "number", 0, 0)
	b, _ := g.AddNode(reg, "number", 0, 80)
	sum, _ := g.AddNode(reg, "arithmetic", 200, 40)
	printer, _ := g.AddNode(reg, "print", 400, 40)

	g.Connect(reg, a.ID, "value", sum.ID, "a")
	g.Connect(reg, b.ID, "value", sum.ID, "b")
	g.Connect(reg, sum.ID, "result", printer.ID, "value")
	require.Len(t, g.Edges, 3)

	// Expression mode removes the operand inputs; both operand edges go,
	// the result edge survives.
	pruned, err := g.SetNodeData(reg, sum.ID, map[string]any{
		"mode":       nodetype.ModeExpression,
		"expression": "a + b",
	})
	require.NoError(t, err)
	assert.Len(t, pruned, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "result", g.Edges[0].SourceHandle)

	_, err = g.SetNodeData(reg, "missing", map[string]any{})
	assert.ErrorIs(t, err, scriptgraph.ErrNodeNotFound)
}

func TestSetNodeDataPrunesRetypedHandle(t *testing.T) {
	g, reg := newTestGraph(t)

	getter, _ := g.AddNode(reg, "variable.get", 0, 0)
	_, err := g.SetNodeData(reg, getter.ID, map[string]any{"variableName": "hp", "type": "number"})
	require.NoError(t, err)

	sum, _ := g.AddNode(reg, "arithmetic", 200, 0)
	_, v, err := g.Connect(reg, getter.ID, "value", sum.ID, "a")
	require.NoError(t, err)
	require.True(t, v.OK)

	// Redeclaring the variable as a string keeps the handle id but makes
	// its type incompatible with the recorded Number target.
	pruned, err := g.SetNodeData(reg, getter.ID, map[string]any{"variableName": "hp", "type": "string"})
	require.NoError(t, err)
	assert.Len(t, pruned, 1)
	assert.Empty(t, g.Edges)
}

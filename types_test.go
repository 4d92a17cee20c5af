package scriptgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowlua/scriptgraph"
)

func TestCompatibleWith(t *testing.T) {
	tests := []struct {
		name   string
		source scriptgraph.LuauType
		target scriptgraph.LuauType
		want   bool
	}{
		{"same concrete type", scriptgraph.TypeNumber, scriptgraph.TypeNumber, true},
		{"concrete into any", scriptgraph.TypeNumber, scriptgraph.TypeAny, true},
		{"any into concrete", scriptgraph.TypeAny, scriptgraph.TypeNumber, true},
		{"any into any", scriptgraph.TypeAny, scriptgraph.TypeAny, true},
		{"number into string", scriptgraph.TypeNumber, scriptgraph.TypeString, false},
		{"boolean into number", scriptgraph.TypeBoolean, scriptgraph.TypeNumber, false},
		{"flow into flow", scriptgraph.TypeFlow, scriptgraph.TypeFlow, true},
		{"flow into number", scriptgraph.TypeFlow, scriptgraph.TypeNumber, false},
		{"number into flow", scriptgraph.TypeNumber, scriptgraph.TypeFlow, false},
		{"nil into nil", scriptgraph.TypeNil, scriptgraph.TypeNil, true},
		{"table into any", scriptgraph.TypeTable, scriptgraph.TypeAny, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.source.CompatibleWith(tt.target))
		})
	}
}

func TestWildcardAbsorption(t *testing.T) {
	concrete := []scriptgraph.LuauType{
		scriptgraph.TypeNumber, scriptgraph.TypeString, scriptgraph.TypeBoolean,
		scriptgraph.TypeTable, scriptgraph.TypeNil, scriptgraph.TypeFlow,
	}
	for _, typ := range concrete {
		assert.True(t, typ.CompatibleWith(scriptgraph.TypeAny), "%s -> any", typ)
		assert.True(t, scriptgraph.TypeAny.CompatibleWith(typ), "any -> %s", typ)
	}
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"number", "string", "boolean", "table", "nil", "any", "flow"} {
		typ, ok := scriptgraph.ParseType(s)
		assert.True(t, ok, s)
		assert.Equal(t, scriptgraph.LuauType(s), typ)
	}

	_, ok := scriptgraph.ParseType("Vector3")
	assert.False(t, ok)
	_, ok = scriptgraph.ParseType("")
	assert.False(t, ok)
}

func TestHandleSetLookup(t *testing.T) {
	hs := scriptgraph.HandleSet{
		Inputs: []scriptgraph.Handle{
			{ID: "exec", Type: scriptgraph.TypeFlow},
			{ID: "value", Type: scriptgraph.TypeAny},
		},
		Outputs: []scriptgraph.Handle{
			{ID: "exec", Type: scriptgraph.TypeFlow},
		},
	}

	in, ok := hs.Input("value")
	assert.True(t, ok)
	assert.Equal(t, scriptgraph.TypeAny, in.Type)

	// "exec" exists on both sides; lookups stay side-local.
	_, ok = hs.Output("value")
	assert.False(t, ok)
	_, ok = hs.Output("exec")
	assert.True(t, ok)

	_, ok = hs.Input("missing")
	assert.False(t, ok)
}

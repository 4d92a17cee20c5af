package nodetype

import (
	"github.com/flowlua/scriptgraph"
)

// staticDef is a kind whose handle set never varies with node data.
type staticDef struct {
	kind     string
	defaults map[string]any
	handles  scriptgraph.HandleSet
}

func (d staticDef) Kind() string { return d.kind }

func (d staticDef) Defaults() map[string]any {
	return scriptgraph.CloneData(d.defaults)
}

func (d staticDef) Handles(map[string]any) scriptgraph.HandleSet {
	return d.handles
}

// varGetDef reads a variable; its output type follows the declared type
// recorded in node data, falling back to Any for anything unparseable.
type varGetDef struct{}

func (varGetDef) Kind() string { return "variable.get" }

func (varGetDef) Defaults() map[string]any {
	return map[string]any{"variableName": "", "type": string(scriptgraph.TypeAny)}
}

func (varGetDef) Handles(data map[string]any) scriptgraph.HandleSet {
	t, ok := scriptgraph.ParseType(stringField(data, "type"))
	if !ok {
		t = scriptgraph.TypeAny
	}
	return scriptgraph.HandleSet{
		Inputs: []scriptgraph.Handle{},
		Outputs: []scriptgraph.Handle{
			{ID: "value", Label: "Value", Type: t},
		},
	}
}

func handles(in, out []scriptgraph.Handle) scriptgraph.HandleSet {
	if in == nil {
		in = []scriptgraph.Handle{}
	}
	if out == nil {
		out = []scriptgraph.Handle{}
	}
	return scriptgraph.HandleSet{Inputs: in, Outputs: out}
}

// exec is the execution-flow handle shared by statement kinds. The id may
// appear on both sides of a node; uniqueness is only per side.
func exec() scriptgraph.Handle {
	return scriptgraph.Handle{ID: "exec", Label: "Exec", Type: scriptgraph.TypeFlow}
}

// literal builds a zero-input kind exposing one typed value output.
func literal(kind string, t scriptgraph.LuauType, defaultValue any) Definition {
	return staticDef{
		kind:     kind,
		defaults: map[string]any{"value": defaultValue},
		handles: handles(nil, []scriptgraph.Handle{
			{ID: "value", Label: "Value", Type: t},
		}),
	}
}

// Builtin returns a registry populated with every kind on the standard
// palette: the entry event, literals, arithmetic, variables, control flow,
// and table operations.
func Builtin() *Registry {
	r := New()
	for _, d := range []Definition{
		staticDef{
			kind:     scriptgraph.EntryKind,
			defaults: map[string]any{"event": "onRun"},
			handles: handles(nil, []scriptgraph.Handle{
				{ID: "body", Label: "Body", Type: scriptgraph.TypeFlow},
			}),
		},
		literal("number", scriptgraph.TypeNumber, float64(0)),
		literal("string", scriptgraph.TypeString, ""),
		literal("boolean", scriptgraph.TypeBoolean, false),
		literal("nil", scriptgraph.TypeNil, nil),
		staticDef{
			kind:     "table",
			defaults: map[string]any{},
			handles: handles(nil, []scriptgraph.Handle{
				{ID: "value", Label: "Table", Type: scriptgraph.TypeTable},
			}),
		},
		arithmeticDef{},
		staticDef{
			kind:     "variable.set",
			defaults: map[string]any{"variableName": ""},
			handles: handles(
				[]scriptgraph.Handle{
					exec(),
					{ID: "value", Label: "Value", Type: scriptgraph.TypeAny},
				},
				[]scriptgraph.Handle{exec()},
			),
		},
		varGetDef{},
		staticDef{
			kind:     "branch",
			defaults: map[string]any{},
			handles: handles(
				[]scriptgraph.Handle{
					exec(),
					{ID: "condition", Label: "Condition", Type: scriptgraph.TypeBoolean},
				},
				[]scriptgraph.Handle{
					{ID: "then", Label: "Then", Type: scriptgraph.TypeFlow},
					{ID: "else", Label: "Else", Type: scriptgraph.TypeFlow},
				},
			),
		},
		staticDef{
			kind:     "while",
			defaults: map[string]any{},
			handles: handles(
				[]scriptgraph.Handle{
					exec(),
					{ID: "condition", Label: "Condition", Type: scriptgraph.TypeBoolean},
				},
				[]scriptgraph.Handle{
					{ID: "body", Label: "Body", Type: scriptgraph.TypeFlow},
					{ID: "done", Label: "Done", Type: scriptgraph.TypeFlow},
				},
			),
		},
		staticDef{
			kind:     "table.get",
			defaults: map[string]any{},
			handles: handles(
				[]scriptgraph.Handle{
					{ID: "table", Label: "Table", Type: scriptgraph.TypeTable},
					{ID: "key", Label: "Key", Type: scriptgraph.TypeAny},
				},
				[]scriptgraph.Handle{
					{ID: "value", Label: "Value", Type: scriptgraph.TypeAny},
				},
			),
		},
		staticDef{
			kind:     "table.set",
			defaults: map[string]any{},
			handles: handles(
				[]scriptgraph.Handle{
					exec(),
					{ID: "table", Label: "Table", Type: scriptgraph.TypeTable},
					{ID: "key", Label: "Key", Type: scriptgraph.TypeAny},
					{ID: "value", Label: "Value", Type: scriptgraph.TypeAny},
				},
				[]scriptgraph.Handle{exec()},
			),
		},
		staticDef{
			kind:     "print",
			defaults: map[string]any{},
			handles: handles(
				[]scriptgraph.Handle{
					exec(),
					{ID: "value", Label: "Value", Type: scriptgraph.TypeAny},
				},
				[]scriptgraph.Handle{exec()},
			),
		},
	} {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

package scriptgraph

// LuauType is the closed set of semantic type tags carried by node handles.
// Flow marks execution-order ports rather than data ports. Any is the
// universal wildcard accepted by either end of a connection.
type LuauType string

const (
	TypeNumber  LuauType = "number"
	TypeString  LuauType = "string"
	TypeBoolean LuauType = "boolean"
	TypeTable   LuauType = "table"
	TypeNil     LuauType = "nil"
	TypeAny     LuauType = "any"
	TypeFlow    LuauType = "flow"
)

// ParseType maps a stored tag to a LuauType. Unknown tags report false.
func ParseType(s string) (LuauType, bool) {
	switch t := LuauType(s); t {
	case TypeNumber, TypeString, TypeBoolean, TypeTable, TypeNil, TypeAny, TypeFlow:
		return t, true
	}
	return "", false
}

// CompatibleWith reports whether a source handle of type t may be wired into
// a target handle of type target. The rule is flat equality-or-wildcard:
// no subtyping, no numeric coercion. Flow participates like any other tag,
// so flow ports never connect to data ports.
func (t LuauType) CompatibleWith(target LuauType) bool {
	return t == target || t == TypeAny || target == TypeAny
}

// EntryKind is the node kind marking a script graph's execution start.
// Every graph contains exactly one such node and it cannot be deleted.
const EntryKind = "event"

// Node is a graph vertex. Kind keys into the node-type registry; X/Y are
// presentation-only canvas coordinates. Data holds kind-specific
// configuration (mode, expression, operator, ...) and must always be a
// valid input to the kind's handle resolver.
type Node struct {
	ID       string         `json:"id,omitempty"`
	Kind     string         `json:"kind"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	ScriptID string         `json:"scriptId,omitempty"`
	Data     map[string]any `json:"data"`
}

// Edge wires one node's output handle to another node's input handle.
// SourceType and TargetType record the handle types observed when the
// connection was made; they are not re-validated afterwards, so they can go
// stale if an endpoint's mode changes.
type Edge struct {
	ID           string   `json:"id,omitempty"`
	Source       string   `json:"source"`
	SourceHandle string   `json:"sourceHandle"`
	Target       string   `json:"target"`
	TargetHandle string   `json:"targetHandle"`
	SourceType   LuauType `json:"sourceType,omitempty"`
	TargetType   LuauType `json:"targetType,omitempty"`
}

// Resolver resolves a node kind's current handle sets and default data.
// It is satisfied by nodetype.Registry and passed explicitly to whatever
// needs it; there is no package-level registry.
type Resolver interface {
	// Handles returns the kind's handle sets for the given data payload.
	// The second result is false for unregistered kinds.
	Handles(kind string, data map[string]any) (HandleSet, bool)

	// Defaults returns a fresh default data payload for the kind.
	Defaults(kind string) (map[string]any, bool)
}

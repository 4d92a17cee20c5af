package scriptgraph

// Reason explains why a proposed connection was refused.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonUnknownSourceKind   Reason = "unknown source node kind"
	ReasonUnknownTargetKind   Reason = "unknown target node kind"
	ReasonUnknownSourceHandle Reason = "source handle not present"
	ReasonUnknownTargetHandle Reason = "target handle not present"
	ReasonTypeMismatch        Reason = "incompatible handle types"
)

// Verdict is the outcome of validating a proposed connection. When OK is
// false, Reason says why. SourceType and TargetType carry the handle types
// observed during validation and are recorded on the edge on acceptance;
// they are zero when the corresponding handle could not be resolved.
type Verdict struct {
	OK         bool     `json:"ok"`
	Reason     Reason   `json:"reason,omitempty"`
	SourceType LuauType `json:"sourceType,omitempty"`
	TargetType LuauType `json:"targetType,omitempty"`
}

func reject(reason Reason) Verdict {
	return Verdict{Reason: reason}
}

// ValidateConnection decides whether an edge may be created from the source
// node's output handle to the target node's input handle. Both endpoints'
// handle sets are resolved from their current data, so a handle id left
// over from a previous mode is rejected rather than matched. The handle id
// is looked up on the dragged side only: outputs for the source, inputs for
// the target.
func ValidateConnection(r Resolver, source Node, sourceHandle string, target Node, targetHandle string) Verdict {
	src, ok := r.Handles(source.Kind, source.Data)
	if !ok {
		return reject(ReasonUnknownSourceKind)
	}
	tgt, ok := r.Handles(target.Kind, target.Data)
	if !ok {
		return reject(ReasonUnknownTargetKind)
	}

	out, ok := src.Output(sourceHandle)
	if !ok {
		return reject(ReasonUnknownSourceHandle)
	}
	in, ok := tgt.Input(targetHandle)
	if !ok {
		v := reject(ReasonUnknownTargetHandle)
		v.SourceType = out.Type
		return v
	}

	v := Verdict{SourceType: out.Type, TargetType: in.Type}
	if !out.Type.CompatibleWith(in.Type) {
		v.Reason = ReasonTypeMismatch
		return v
	}
	v.OK = true
	return v
}

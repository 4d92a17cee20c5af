package nodetype

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/flowlua/scriptgraph"
)

// wellFormed checks the resolver contract: both slices present, every type
// drawn from the closed enumeration, ids unique per side.
func wellFormed(hs scriptgraph.HandleSet) bool {
	if hs.Inputs == nil || hs.Outputs == nil {
		return false
	}
	for _, side := range [][]scriptgraph.Handle{hs.Inputs, hs.Outputs} {
		seen := map[string]bool{}
		for _, h := range side {
			if _, ok := scriptgraph.ParseType(string(h.Type)); !ok {
				return false
			}
			if h.ID == "" || seen[h.ID] {
				return false
			}
			seen[h.ID] = true
		}
	}
	return true
}

// TestResolverTotality verifies that no registered kind's resolver panics
// or returns a malformed handle set for any data payload: nil, empty,
// defaults, every documented mode, and arbitrary junk.
func TestResolverTotality(t *testing.T) {
	reg := Builtin()

	fixed := []map[string]any{
		nil,
		{},
		{"mode": ModeOperands},
		{"mode": ModeExpression},
		{"mode": 3.14},
		{"type": "number"},
		{"type": []any{"number"}},
		{"value": map[string]any{"nested": true}},
	}
	for _, kind := range reg.Kinds() {
		defaults, _ := reg.Defaults(kind)
		for _, data := range append(fixed, defaults) {
			hs, ok := reg.Handles(kind, data)
			if !ok {
				t.Fatalf("kind %s vanished from registry", kind)
			}
			if !wellFormed(hs) {
				t.Fatalf("kind %s returned malformed handle set for %v", kind, data)
			}
		}
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Arbitrary payloads: random keys mapped to strings, numbers, or
	// booleans, with the interesting keys mixed in at random.
	// gopter's Gen.Map treats a mapper returning interface{} as the
	// deprecated *GenResult protocol and panics, so the results are
	// retyped to any directly for MapOf to build a map[string]any.
	anyType := reflect.TypeOf((*any)(nil)).Elem()
	asAny := func(g gopter.Gen) gopter.Gen {
		return func(p *gopter.GenParameters) *gopter.GenResult {
			r := g(p)
			// MapOf applies one element's sieve to every value; guard
			// it so values of another branch's type pass through
			// instead of crashing the reflective call.
			if s := r.Sieve; s != nil {
				ct := r.ResultType
				r.Sieve = func(v any) bool {
					if v == nil || !reflect.TypeOf(v).AssignableTo(ct) {
						return true
					}
					return s(v)
				}
			}
			r.ResultType = anyType
			return r
		}
	}
	junkValue := gen.OneGenOf(
		asAny(gen.AnyString()),
		asAny(gen.Float64()),
		asAny(gen.Bool()),
	)
	payload := gen.MapOf(
		gen.OneConstOf("mode", "expression", "operator", "type", "value", "variableName", "junk"),
		junkValue,
	)

	for _, kind := range reg.Kinds() {
		kind := kind
		properties.Property("resolver total for "+kind, prop.ForAll(
			func(data map[string]any) bool {
				hs, ok := reg.Handles(kind, data)
				return ok && wellFormed(hs)
			},
			payload,
		))
	}

	properties.TestingRun(t)
}

package nodetype

import (
	"fmt"
	"regexp"

	"github.com/flowlua/scriptgraph"
)

// Arithmetic node modes. In operand mode the node exposes two fixed Number
// inputs and applies its configured operator. In expression mode the inputs
// disappear entirely and the computation is driven by the inline expression
// string instead.
const (
	ModeOperands   = "operands"
	ModeExpression = "expression"
)

// expressionPattern conservatively accepts Luau arithmetic expressions over
// numbers, identifiers, the arithmetic operators, and parentheses.
var expressionPattern = regexp.MustCompile(`^[\s0-9a-zA-Z_.+\-*/%^()]+$`)

// ValidExpression reports whether s is acceptable as an inline arithmetic
// expression.
func ValidExpression(s string) bool {
	return s != "" && expressionPattern.MatchString(s)
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
}

type arithmeticDef struct{}

func (arithmeticDef) Kind() string { return "arithmetic" }

func (arithmeticDef) Defaults() map[string]any {
	return map[string]any{
		"mode":       ModeOperands,
		"operator":   "+",
		"expression": "",
	}
}

func (arithmeticDef) Handles(data map[string]any) scriptgraph.HandleSet {
	outputs := []scriptgraph.Handle{
		{ID: "result", Label: "Result", Type: scriptgraph.TypeNumber},
	}
	if stringField(data, "mode") == ModeExpression {
		return scriptgraph.HandleSet{Inputs: []scriptgraph.Handle{}, Outputs: outputs}
	}
	return scriptgraph.HandleSet{
		Inputs: []scriptgraph.Handle{
			{ID: "a", Label: "A", Type: scriptgraph.TypeNumber},
			{ID: "b", Label: "B", Type: scriptgraph.TypeNumber},
		},
		Outputs: outputs,
	}
}

func (arithmeticDef) ValidateData(data map[string]any) error {
	switch mode := stringField(data, "mode"); mode {
	case "", ModeOperands:
		if op := stringField(data, "operator"); op != "" && !operators[op] {
			return fmt.Errorf("nodetype: arithmetic: unknown operator %q", op)
		}
	case ModeExpression:
		if expr := stringField(data, "expression"); !ValidExpression(expr) {
			return fmt.Errorf("nodetype: arithmetic: invalid expression %q", expr)
		}
	default:
		return fmt.Errorf("nodetype: arithmetic: unknown mode %q", mode)
	}
	return nil
}

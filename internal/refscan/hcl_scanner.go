package refscan

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// HCLScanner reads id literals from the syntax tree of an expression parsed
// as HCL native syntax. Function calls such as getPassed("1234") and
// comparisons parse without evaluation, so only string literals that appear
// as actual operands are reported; digits inside a longer string do not count.
//
// Condition languages that use single-character boolean operators (& and |)
// are not valid HCL. Whenever parsing fails the scanner falls back to
// QuoteScanner, so it never reports fewer ids than the heuristic on input the
// parser rejects.
type HCLScanner struct {
	fallback Scanner
}

// NewHCLScanner returns an HCLScanner that falls back to QuoteScanner.
func NewHCLScanner() *HCLScanner {
	return &HCLScanner{fallback: QuoteScanner{}}
}

// Scan implements Scanner.
func (s *HCLScanner) Scan(expression string) []string {
	expr, diags := hclsyntax.ParseExpression([]byte(expression), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return s.fallback.Scan(expression)
	}

	var out []string
	seen := make(map[string]struct{})
	hclsyntax.VisitAll(expr, func(n hclsyntax.Node) hcl.Diagnostics {
		lit, ok := n.(*hclsyntax.LiteralValueExpr)
		if !ok || !lit.Val.IsKnown() || lit.Val.IsNull() || lit.Val.Type() != cty.String {
			return nil
		}
		candidate := lit.Val.AsString()
		if !IsIDLiteral(candidate) {
			return nil
		}
		if _, dup := seen[candidate]; !dup {
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
		return nil
	})
	return out
}

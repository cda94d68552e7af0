package course

import "sort"

// Well-known configuration keys read by the dependency analyzers.
const (
	KeyScoreCalculator  = "scoreCalculatorExpression"
	KeyPassedCalculator = "passedCalculatorExpression"
	KeyReferencedNode   = "referencedNode"
	KeySoftkey          = "softkey"
)

// Further keys that may hold node ids and are rewritten after duplication.
const (
	KeyAssessedNodeIdent   = "assessedNodeIdent"
	KeyReferencedNodeIdent = "referencedNodeIdent"
	KeyNodeIdent           = "nodeIdent"
	KeyCondition           = "condition"
	KeyPrerequisite        = "prerequisite"
)

// Config is a node's free-form configuration. Values are plain strings; a
// missing key reads as the empty string.
type Config map[string]string

// StringValue returns the value stored under key, or "" when absent.
func (c Config) StringValue(key string) string {
	if c == nil {
		return ""
	}
	return c[key]
}

// Has reports whether key is present, even with an empty value.
func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// Set stores value under key. Calling Set on a nil Config panics, so nodes
// created by loaders always carry an initialized map.
func (c Config) Set(key, value string) {
	c[key] = value
}

// Keys returns the configuration keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

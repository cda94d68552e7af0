// Package refscan finds node-id literals inside free-text expressions such
// as access conditions and score formulas.
//
// A Scanner is deliberately lexical: it does not evaluate or validate the
// expression. QuoteScanner is the default and accepts any double-quoted run of
// digits; HCLScanner parses the expression as HCL when it can and reads the
// string literals from the syntax tree. Both can under-match (ids that are
// unquoted or non-numeric) and over-match (an unrelated quoted number that
// collides with a real node id). Callers narrow the result to ids that exist
// with Resolve.
package refscan

import (
	"fmt"
	"regexp"
	"strings"
)

// Scanner extracts candidate node ids from an expression, in order of first
// appearance and without duplicates. Implementations never fail: malformed
// input yields whatever candidates were found before the scan gave up.
type Scanner interface {
	Scan(expression string) []string
}

// idLiteral is the conservative shape of a node id: digits only.
var idLiteral = regexp.MustCompile(`^\d+$`)

// IsIDLiteral reports whether s has the shape of a node id.
func IsIDLiteral(s string) bool {
	return idLiteral.MatchString(s)
}

// QuoteScanner pairs double quotes left to right and keeps every enclosed
// run of digits. An unmatched trailing quote ends the scan.
type QuoteScanner struct{}

// Scan implements Scanner.
func (QuoteScanner) Scan(expression string) []string {
	var out []string
	seen := make(map[string]struct{})
	rest := expression
	for {
		open := strings.IndexByte(rest, '"')
		if open < 0 {
			return out
		}
		rest = rest[open+1:]
		closing := strings.IndexByte(rest, '"')
		if closing < 0 {
			return out
		}
		candidate := rest[:closing]
		rest = rest[closing+1:]
		if candidate == "" || !IsIDLiteral(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
}

// Resolve scans expression and keeps the candidates for which known returns
// true. An empty expression yields nil without invoking the scanner.
func Resolve(s Scanner, expression string, known func(id string) bool) []string {
	if strings.TrimSpace(expression) == "" {
		return nil
	}
	var out []string
	for _, id := range s.Scan(expression) {
		if known(id) {
			out = append(out, id)
		}
	}
	return out
}

// ByName returns the scanner registered under name: "quote" (the default
// when name is empty) or "hcl".
func ByName(name string) (Scanner, error) {
	switch strings.ToLower(name) {
	case "", "quote":
		return QuoteScanner{}, nil
	case "hcl":
		return NewHCLScanner(), nil
	default:
		return nil, fmt.Errorf("unknown expression scanner %q: must be 'quote' or 'hcl'", name)
	}
}

package depgraph

import "fmt"

// ValidationResult is the outcome of a deletion-safety or selection check.
// Callers inspect Valid; problems are never reported as Go errors.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Summary         string   `json:"summary"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	AffectedNodeIDs []string `json:"affected_node_ids"`
	// SuggestedInclusions lists nodes a selection should add to keep its
	// references intact.
	SuggestedInclusions []string `json:"suggested_inclusions,omitempty"`
}

// Valid returns a result without errors or warnings.
func Valid() ValidationResult {
	return ValidationResult{
		Valid:           true,
		Summary:         "No dependency issues found",
		Errors:          []string{},
		Warnings:        []string{},
		AffectedNodeIDs: []string{},
	}
}

// Invalid returns a failed result.
func Invalid(summary string, errs, affected []string) ValidationResult {
	return ValidationResult{
		Valid:           false,
		Summary:         summary,
		Errors:          nonNil(errs),
		Warnings:        []string{},
		AffectedNodeIDs: nonNil(affected),
	}
}

// WithWarnings returns a passing result that still has something to say.
func WithWarnings(summary string, warnings, affected []string) ValidationResult {
	return ValidationResult{
		Valid:           true,
		Summary:         summary,
		Errors:          []string{},
		Warnings:        nonNil(warnings),
		AffectedNodeIDs: nonNil(affected),
	}
}

func (r ValidationResult) HasErrors() bool   { return len(r.Errors) > 0 }
func (r ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// HasIssues reports whether the result is invalid or carries warnings or
// suggestions.
func (r ValidationResult) HasIssues() bool {
	return !r.Valid || r.HasWarnings() || len(r.SuggestedInclusions) > 0
}

func (r ValidationResult) String() string {
	return fmt.Sprintf("ValidationResult{valid=%t errors=%d warnings=%d summary=%q}",
		r.Valid, len(r.Errors), len(r.Warnings), r.Summary)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

package depgraph

import "fmt"

// DependentsOf returns the nodes that directly depend on id. An unknown id
// yields an empty slice.
func DependentsOf(m *Map, id string) []string {
	info, ok := m.Get(id)
	if !ok {
		return []string{}
	}
	return info.DependedBy()
}

// RequiredBy returns the nodes id directly depends on. An unknown id yields
// an empty slice.
func RequiredBy(m *Map, id string) []string {
	info, ok := m.Get(id)
	if !ok {
		return []string{}
	}
	return info.DependsOn()
}

// CanDelete reports whether removing id would leave dangling references.
// A node nobody depends on, or one that is not in the map, is deletable.
func CanDelete(m *Map, id string) ValidationResult {
	info, ok := m.Get(id)
	if !ok {
		return Valid()
	}
	dependents := info.DependedBy()
	if len(dependents) == 0 {
		return Valid()
	}

	errs := make([]string, 0, len(dependents))
	for _, depID := range dependents {
		errs = append(errs, fmt.Sprintf("Node '%s' depends on this element", title(m, depID)))
	}
	summary := fmt.Sprintf("%d element(s) depend on this node and will be affected", len(dependents))
	return Invalid(summary, errs, dependents)
}

// ValidateSelection checks a set of nodes chosen for duplication. Unknown ids
// are errors and make up AffectedNodeIDs of the invalid result. Requirements left outside the selection are warnings and are
// offered as SuggestedInclusions; nodes with a cyclic dependency are warned
// about because their duplication order is only best effort.
func ValidateSelection(m *Map, ids []string) ValidationResult {
	var selection idSet
	for _, id := range ids {
		selection.add(id)
	}

	var errs, warnings []string
	var missing, unknown idSet
	cyclic := 0
	for _, id := range selection.order {
		info, ok := m.Get(id)
		if !ok {
			errs = append(errs, fmt.Sprintf("Node not found: %s", id))
			unknown.add(id)
			continue
		}
		for _, dep := range info.dependsOn.order {
			if selection.has(dep) {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("Element '%s' depends on '%s' which is not selected",
				info.nodeTitle, title(m, dep)))
			missing.add(dep)
		}
		if info.cyclic {
			cyclic++
			warnings = append(warnings, fmt.Sprintf("Element '%s' is part of a cyclic dependency", info.nodeTitle))
		}
	}

	var result ValidationResult
	switch {
	case len(errs) > 0:
		result = Invalid(fmt.Sprintf("%d selected element(s) could not be found", len(errs)), errs, unknown.list())
		result.Warnings = nonNil(warnings)
	case missing.len() > 0:
		summary := fmt.Sprintf("%d required element(s) are not selected", missing.len())
		result = WithWarnings(summary, warnings, missing.list())
	case cyclic > 0:
		summary := fmt.Sprintf("%d selected element(s) are part of a cyclic dependency", cyclic)
		return WithWarnings(summary, warnings, nil)
	default:
		return Valid()
	}
	if missing.len() > 0 {
		result.SuggestedInclusions = missing.list()
	}
	return result
}

// RequirementClosure expands ids with every node they transitively depend
// on. The result lists ids first (deduplicated, unknown ids kept) followed by
// the discovered requirements in discovery order. Cycles terminate because
// every node is visited once.
func RequirementClosure(m *Map, ids []string) []string {
	var closure idSet
	for _, id := range ids {
		closure.add(id)
	}
	for i := 0; i < closure.len(); i++ {
		info, ok := m.Get(closure.order[i])
		if !ok {
			continue
		}
		for _, dep := range info.dependsOn.order {
			closure.add(dep)
		}
	}
	return closure.list()
}

func title(m *Map, id string) string {
	if info, ok := m.Get(id); ok && info.nodeTitle != "" {
		return info.nodeTitle
	}
	return id
}

package depgraph

import (
	"fmt"
	"strings"
)

// Ordering is the result of DuplicationOrder.
//
// Order always contains every requested id exactly once. It is a valid
// dependency order for the acyclic part of the selection; ids caught in a
// cycle inside the selection are appended at the end in request order and
// also listed in Unresolved. Callers that must not accept a best-effort
// order check Strict.
type Ordering struct {
	Order      []string `json:"order"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Complete reports whether every id was placed by the topological sort.
func (o *Ordering) Complete() bool { return len(o.Unresolved) == 0 }

// Strict returns a *CycleError when the order is only best effort.
func (o *Ordering) Strict() error {
	if o.Complete() {
		return nil
	}
	ids := make([]string, len(o.Unresolved))
	copy(ids, o.Unresolved)
	return &CycleError{NodeIDs: ids}
}

// CycleError names the selected nodes that could not be ordered.
type CycleError struct {
	NodeIDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency among selected nodes: %s", strings.Join(e.NodeIDs, ", "))
}

// DuplicationOrder orders ids so that every node comes after the nodes it
// depends on, considering only edges between selected nodes (Kahn's
// algorithm). Ties keep the order of ids; callers that want a stable result
// independent of their own selection order sort ids first. Repeated ids are
// collapsed and unknown ids are treated as having no dependencies.
func DuplicationOrder(m *Map, ids []string) *Ordering {
	var selection idSet
	for _, id := range ids {
		selection.add(id)
	}

	inDegree := make(map[string]int, selection.len())
	var queue []string
	for _, id := range selection.order {
		degree := 0
		if info, ok := m.Get(id); ok {
			for _, dep := range info.dependsOn.order {
				if selection.has(dep) {
					degree++
				}
			}
		}
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, selection.len())
	placed := make(map[string]bool, selection.len())
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		placed[id] = true

		info, ok := m.Get(id)
		if !ok {
			continue
		}
		for _, dependent := range info.dependedBy.order {
			if !selection.has(dependent) || placed[dependent] {
				continue
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	result := &Ordering{Order: order}
	for _, id := range selection.order {
		if !placed[id] {
			result.Order = append(result.Order, id)
			result.Unresolved = append(result.Unresolved, id)
		}
	}
	return result
}

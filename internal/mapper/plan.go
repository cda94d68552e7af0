package mapper

import (
	"context"
	"fmt"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
	"github.com/vk/coursegraph/internal/depgraph"
)

// Plan describes what duplicating one node would involve, without copying
// anything.
type Plan struct {
	NodeID              string `json:"node_id"`
	IncludeDependencies bool   `json:"include_dependencies"`
	// Selection is the node's subtree in tree order, followed by the
	// requirements pulled in when IncludeDependencies is set.
	Selection  []string                  `json:"selection"`
	Order      []string                  `json:"order"`
	Unresolved []string                  `json:"unresolved,omitempty"`
	Validation depgraph.ValidationResult `json:"validation"`
}

// PlanDuplication works out the selection, order and validation for
// duplicating nodeID together with its subtree. With includeDependencies the
// selection is widened to everything the subtree transitively depends on, so
// the copy carries no dangling references.
func (s *Service) PlanDuplication(ctx context.Context, c *course.Course, nodeID string, includeDependencies bool) (*Plan, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return nil, err
	}
	node := c.FindNode(nodeID)
	if node == nil {
		return nil, fmt.Errorf("cannot plan duplication of %q: %w", nodeID, ErrNodeNotFound)
	}

	var selection []string
	for _, n := range course.Flatten(node) {
		selection = append(selection, n.ID)
	}
	if includeDependencies {
		selection = depgraph.RequirementClosure(m, selection)
	}

	ordering := depgraph.DuplicationOrder(m, selection)
	plan := &Plan{
		NodeID:              nodeID,
		IncludeDependencies: includeDependencies,
		Selection:           selection,
		Order:               ordering.Order,
		Unresolved:          ordering.Unresolved,
		Validation:          depgraph.ValidateSelection(m, selection),
	}
	ctxlog.FromContext(ctx).Debug("Duplication planned.",
		"node_id", nodeID, "selected", len(selection), "unresolved", len(plan.Unresolved))
	return plan, nil
}

package mapper

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/ctxlog"
	"github.com/vk/coursegraph/internal/depgraph"
)

// ErrNodeNotFound is returned when an operation names a node the course does
// not contain.
var ErrNodeNotFound = errors.New("node not found")

// Service answers dependency questions about course snapshots.
type Service struct {
	builder *depgraph.Builder
}

// New returns a Service whose builder is configured with opts.
func New(opts ...depgraph.Option) *Service {
	return &Service{builder: depgraph.NewBuilder(opts...)}
}

// Analyze builds the dependency map of c and flags cyclic nodes.
func (s *Service) Analyze(ctx context.Context, c *course.Course) (*depgraph.Map, error) {
	if c == nil {
		return nil, depgraph.ErrNilRoot
	}
	m, err := s.builder.Analyze(ctx, c.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze course %q: %w", c.Title, err)
	}
	ctxlog.FromContext(ctx).Debug("Course analyzed.",
		"course", c.Title, "node_count", m.Len(), "edge_count", m.EdgeCount())
	return m, nil
}

// DependentsOf returns the nodes of c that directly depend on id.
func (s *Service) DependentsOf(ctx context.Context, c *course.Course, id string) ([]string, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return nil, err
	}
	return depgraph.DependentsOf(m, id), nil
}

// RequiredNodes returns the nodes id directly depends on.
func (s *Service) RequiredNodes(ctx context.Context, c *course.Course, id string) ([]string, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return nil, err
	}
	return depgraph.RequiredBy(m, id), nil
}

// CanDelete reports whether id can be removed from c without leaving
// dangling references.
func (s *Service) CanDelete(ctx context.Context, c *course.Course, id string) (depgraph.ValidationResult, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return depgraph.ValidationResult{}, err
	}
	return depgraph.CanDelete(m, id), nil
}

// DuplicationOrder orders ids so that each node follows the nodes it needs.
// The ids are sorted first, so the result does not depend on the order the
// caller happened to collect them in.
func (s *Service) DuplicationOrder(ctx context.Context, c *course.Course, ids []string) (*depgraph.Ordering, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return nil, err
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	ordering := depgraph.DuplicationOrder(m, sorted)
	if !ordering.Complete() {
		ctxlog.FromContext(ctx).Warn("Duplication order is best effort.", "unresolved", ordering.Unresolved)
	}
	return ordering, nil
}

// ValidateSelection checks whether the selected nodes can be duplicated on
// their own.
func (s *Service) ValidateSelection(ctx context.Context, c *course.Course, ids []string) (depgraph.ValidationResult, error) {
	m, err := s.Analyze(ctx, c)
	if err != nil {
		return depgraph.ValidationResult{}, err
	}
	return depgraph.ValidateSelection(m, ids), nil
}
